// Package trace persists one row per evaluate run — source, final printed
// value, optimizer rewrite count, CAM instruction count — giving the
// reduction a program underwent a queryable record across runs instead of
// only holding for the one run that produced it.
package trace

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded evaluate invocation.
type Run struct {
	ID                string
	Source            string
	ResultInspect     string
	RewriteCount      int
	InstructionCount  int
}

// Store wraps a sqlite-backed database/sql handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	source            TEXT NOT NULL,
	result_inspect    TEXT NOT NULL,
	rewrite_count     INTEGER NOT NULL,
	instruction_count INTEGER NOT NULL,
	created_at        TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Open opens (creating if necessary) the sqlite database at path and
// ensures the runs table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewRunID mints the UUID assigned to a top-level evaluate invocation,
// shared by cmd/cam, internal/rpcserver, and this store.
func NewRunID() string {
	return uuid.New().String()
}

// Record inserts a completed run.
func (s *Store) Record(ctx context.Context, run Run) error {
	const q = `
INSERT INTO runs (id, source, result_inspect, rewrite_count, instruction_count)
VALUES (?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, run.ID, run.Source, run.ResultInspect, run.RewriteCount, run.InstructionCount)
	if err != nil {
		return fmt.Errorf("trace: record run %s: %w", run.ID, err)
	}
	return nil
}

// Get looks up a previously recorded run by ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	const q = `
SELECT id, source, result_inspect, rewrite_count, instruction_count
FROM runs WHERE id = ?
`
	var run Run
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&run.ID, &run.Source, &run.ResultInspect, &run.RewriteCount, &run.InstructionCount,
	)
	if err != nil {
		return Run{}, fmt.Errorf("trace: get run %s: %w", id, err)
	}
	return run, nil
}
