package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/postgres"
)

// Store appends run events to PostgreSQL.
//
// It requires a `wordfreq_runs` table:
//
//	CREATE TABLE wordfreq_runs (
//	    id          BIGSERIAL PRIMARY KEY,
//	    run_id      TEXT NOT NULL,
//	    url         TEXT NOT NULL,
//	    event_type  TEXT NOT NULL,
//	    error_kind  TEXT,
//	    data        JSONB NOT NULL,
//	    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Store struct {
	db execer
}

type execer interface {
	Exec(ctx context.Context, query string, args ...any) error
}

func NewStore(db *postgres.Client) *Store {
	return &Store{db: db}
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Record(ctx context.Context, ev RunEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling run event: %w", err)
	}
	var errorKind any
	if ev.ErrorKind != "" {
		errorKind = ev.ErrorKind
	}
	if err := s.db.Exec(ctx,
		`INSERT INTO wordfreq_runs (run_id, url, event_type, error_kind, data, recorded_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.RunID, ev.URL, string(ev.Type), errorKind, data, ev.Timestamp,
	); err != nil {
		return fmt.Errorf("saving run event: %w", err)
	}
	return nil
}
