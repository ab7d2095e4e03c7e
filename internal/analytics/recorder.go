// Package analytics emits one telemetry event per wordfreq run to the
// configured sinks (a Kafka topic, a PostgreSQL table, or both). Sink failures
// are logged and never change the outcome of a run.
package analytics

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives run events.
type Sink interface {
	Name() string
	Record(ctx context.Context, ev RunEvent) error
}

type Recorder struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger
}

// NewRecorder returns a Recorder that gives each sink at most timeout to
// accept an event.
func NewRecorder(timeout time.Duration, sinks ...Sink) *Recorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Recorder{
		sinks:   sinks,
		timeout: timeout,
		logger:  slog.Default().With("component", "analytics-recorder"),
	}
}

// Record delivers ev to every sink in order and returns how many accepted it.
func (r *Recorder) Record(ctx context.Context, ev RunEvent) int {
	delivered := 0
	for _, sink := range r.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := sink.Record(sinkCtx, ev)
		cancel()
		if err != nil {
			r.logger.Warn("failed to record run event", "sink", sink.Name(), "type", ev.Type, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// Len returns the number of configured sinks.
func (r *Recorder) Len() int {
	return len(r.sinks)
}
