package analytics

import (
	"errors"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer"
	apperrors "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/errors"
)

type EventType string

const (
	EventRunSucceeded EventType = "run_succeeded"
	EventRunFailed    EventType = "run_failed"
)

// RunEvent describes one pipeline run. It carries totals only, never the
// ranked words.
type RunEvent struct {
	Type         EventType `json:"type"`
	RunID        string    `json:"run_id"`
	URL          string    `json:"url"`
	Requested    int       `json:"requested"`
	FailedStage  string    `json:"failed_stage,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	StatusCode   int       `json:"status_code,omitempty"`
	BodyBytes    int       `json:"body_bytes"`
	TotalTokens  int       `json:"total_tokens"`
	UniqueTokens int       `json:"unique_tokens"`
	CacheHit     bool      `json:"cache_hit"`
	LatencyMs    int64     `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// SucceededEvent builds the event for a successful run.
func SucceededEvent(runID string, res *analyzer.Result) RunEvent {
	return RunEvent{
		Type:         EventRunSucceeded,
		RunID:        runID,
		URL:          res.Location,
		Requested:    res.Requested,
		BodyBytes:    res.BodyBytes,
		TotalTokens:  res.Total,
		UniqueTokens: res.Unique,
		CacheHit:     res.CacheHit,
		LatencyMs:    res.Elapsed.Milliseconds(),
		Timestamp:    time.Now().UTC(),
	}
}

// FailedEvent builds the event for a run that aborted with err.
func FailedEvent(runID, location string, requested int, elapsed time.Duration, err error) RunEvent {
	ev := RunEvent{
		Type:       EventRunFailed,
		RunID:      runID,
		URL:        location,
		Requested:  requested,
		ErrorKind:  string(apperrors.KindOf(err)),
		StatusCode: apperrors.StatusCode(err),
		LatencyMs:  elapsed.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
	var stageErr *analyzer.StageError
	if errors.As(err, &stageErr) {
		ev.FailedStage = stageErr.Stage.String()
	}
	return ev
}
