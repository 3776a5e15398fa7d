// Package history records metadata about transform requests in PostgreSQL.
//
// Only metadata is stored (mode, sizes, timing, client address) — never the
// documents themselves, so the transformation stays stateless with respect
// to its input. The store is optional: the service runs without it when no
// database is configured.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS transform_history (
		id           UUID PRIMARY KEY,
		mode         TEXT NOT NULL,
		input_bytes  INTEGER NOT NULL,
		input_lines  INTEGER NOT NULL,
		output_lines BIGINT NOT NULL,
		duration_ms  BIGINT NOT NULL,
		remote_addr  TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS transform_history_created_at_idx
		ON transform_history (created_at)`,
}

// Entry is one recorded transform request.
type Entry struct {
	ID          uuid.UUID     `json:"id"`
	Mode        string        `json:"mode"`
	InputBytes  int           `json:"input_bytes"`
	InputLines  int           `json:"input_lines"`
	OutputLines int64         `json:"output_lines"`
	Duration    time.Duration `json:"-"`
	DurationMS  int64         `json:"duration_ms"`
	RemoteAddr  string        `json:"remote_addr,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Store persists transform history entries.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates the history table if it does not exist and returns a
// ready-to-use store.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	for _, stmt := range schemaSQL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create transform_history: %w", err)
		}
	}
	return &Store{pool: pool}, nil
}

// Record inserts one entry and returns its assigned ID.
func (s *Store) Record(ctx context.Context, e Entry) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO transform_history
			(id, mode, input_bytes, input_lines, output_lines, duration_ms, remote_addr)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, e.Mode, e.InputBytes, e.InputLines, e.OutputLines,
		e.Duration.Milliseconds(), e.RemoteAddr,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record transform: %w", err)
	}
	return id, nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, mode, input_bytes, input_lines, output_lines, duration_ms, remote_addr, created_at
		 FROM transform_history
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Mode, &e.InputBytes, &e.InputLines,
			&e.OutputLines, &e.DurationMS, &e.RemoteAddr, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Duration = time.Duration(e.DurationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge deletes entries older than the retention window and returns how
// many were removed.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM transform_history WHERE created_at < now() - make_interval(secs => $1)`,
		olderThan.Seconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// StartRetentionLoop runs Purge on a fixed interval until ctx is cancelled.
// An initial purge runs shortly after startup so a long interval does not
// postpone cleanup of a backlog.
func (s *Store) StartRetentionLoop(ctx context.Context, interval, retention time.Duration) {
	slog.Info("history retention job started",
		"interval", interval,
		"retention", retention,
	)

	timer := time.NewTimer(time.Minute)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("history retention job stopped")
			return
		case <-timer.C:
		}

		deleted, err := s.Purge(ctx, retention)
		if err != nil {
			slog.Error("history purge failed", "error", err)
		} else if deleted > 0 {
			slog.Info("history purged", "deleted", deleted)
		}

		timer.Reset(interval)
	}
}
