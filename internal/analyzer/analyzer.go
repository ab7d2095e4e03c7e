// Package analyzer drives the word-frequency pipeline: fetch the document
// body, normalise it, split it into tokens, and count them. Stages run
// strictly in order and the first failure aborts the run.
package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer/frequency"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/internal/analyzer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/metrics"
)

// Stage is a state of a pipeline run.
type Stage int

const (
	StageIdle Stage = iota
	StageFetching
	StageNormalizing
	StageTokenizing
	StageCounting
	StageDone
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageFetching:
		return "fetching"
	case StageNormalizing:
		return "normalizing"
	case StageTokenizing:
		return "tokenizing"
	case StageCounting:
		return "counting"
	case StageDone:
		return "done"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// Source yields the body of the document at location.
type Source interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// cachingSource is implemented by sources that can report cache hits.
type cachingSource interface {
	GetOrFetch(ctx context.Context, location string) (string, bool, error)
}

// Result is the outcome of a successful run.
type Result struct {
	Location  string
	Requested int
	Top       []frequency.Entry
	Unique    int
	Total     int
	BodyBytes int
	CacheHit  bool
	Elapsed   time.Duration
}

// StageError records the stage in which a run failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Analyzer runs the pipeline against a Source. OnStage, if set, is called as
// each stage starts.
type Analyzer struct {
	source  Source
	metrics *metrics.Metrics
	logger  *slog.Logger
	OnStage func(Stage)
}

func New(source Source, m *metrics.Metrics) *Analyzer {
	return &Analyzer{
		source:  source,
		metrics: m,
		logger:  slog.Default().With("component", "analyzer"),
	}
}

// Run executes the pipeline for location and ranks the top k tokens.
// Errors are returned as *StageError.
func (a *Analyzer) Run(ctx context.Context, location string, k int) (*Result, error) {
	start := time.Now()
	res := &Result{Location: location, Requested: k}

	a.enter(StageFetching)
	body, hit, err := a.fetch(ctx, location)
	if err != nil {
		return nil, a.fail(StageFetching, err)
	}
	res.BodyBytes = len(body)
	res.CacheHit = hit
	a.metrics.DocumentBytes.Set(float64(len(body)))

	a.enter(StageNormalizing)
	var normalized string
	a.timed(StageNormalizing, func() { normalized = normalizer.Normalize(body) })

	a.enter(StageTokenizing)
	var tokens []string
	a.timed(StageTokenizing, func() { tokens = tokenizer.Tokenize(normalized) })

	a.enter(StageCounting)
	var table *frequency.Table
	a.timed(StageCounting, func() {
		table = frequency.Count(tokens)
		res.Top = table.Top(k)
	})
	res.Unique = table.Len()
	res.Total = table.Total()
	a.metrics.TokensTotal.Add(float64(res.Total))
	a.metrics.UniqueTokens.Set(float64(res.Unique))

	a.enter(StageDone)
	res.Elapsed = time.Since(start)
	a.logger.Info("analysis complete",
		"url", location,
		"body_bytes", res.BodyBytes,
		"total_tokens", res.Total,
		"unique_tokens", res.Unique,
		"cache_hit", res.CacheHit,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

func (a *Analyzer) fetch(ctx context.Context, location string) (string, bool, error) {
	begin := time.Now()
	defer func() {
		a.metrics.StageDuration.WithLabelValues(StageFetching.String()).Observe(time.Since(begin).Seconds())
	}()
	if cs, ok := a.source.(cachingSource); ok {
		return cs.GetOrFetch(ctx, location)
	}
	body, err := a.source.Fetch(ctx, location)
	return body, false, err
}

func (a *Analyzer) timed(stage Stage, fn func()) {
	begin := time.Now()
	fn()
	a.metrics.StageDuration.WithLabelValues(stage.String()).Observe(time.Since(begin).Seconds())
}

func (a *Analyzer) enter(stage Stage) {
	a.logger.Debug("stage started", "stage", stage.String())
	if a.OnStage != nil {
		a.OnStage(stage)
	}
}

func (a *Analyzer) fail(stage Stage, err error) error {
	a.logger.Info("analysis aborted", "stage", stage.String(), "error", err)
	if a.OnStage != nil {
		a.OnStage(StageError)
	}
	return &StageError{Stage: stage, Err: err}
}
