// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/gazekit/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for learned corrections and replay history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corrections (
			key TEXT NOT NULL,
			replacement TEXT NOT NULL,
			learned_at TEXT NOT NULL,
			PRIMARY KEY (key, replacement)
		);`,
		`CREATE TABLE IF NOT EXISTS replay_sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			trace_path TEXT NOT NULL,
			samples INTEGER NOT NULL,
			rms_raw REAL NOT NULL,
			rms_smoothed REAL NOT NULL,
			stability_ratio REAL NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_corrections_key ON corrections(key);`,
		`CREATE INDEX IF NOT EXISTS idx_replay_sessions_ended_at ON replay_sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertCorrection stores one learned correction. Re-inserting the same
// key/replacement pair is a no-op, matching the engine's idempotent Learn.
func (s *Store) InsertCorrection(ctx context.Context, key, replacement string, learnedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO corrections (key, replacement, learned_at) VALUES (?, ?, ?)`,
		key, replacement, learnedAt.Format(time.RFC3339Nano))
	return err
}

// ListCorrections returns all learned corrections ordered by key, then
// by when they were learned.
func (s *Store) ListCorrections(ctx context.Context) ([]model.Correction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, replacement, learned_at FROM corrections ORDER BY key, learned_at`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Correction
	for rows.Next() {
		var c model.Correction
		var learnedAt string
		if err := rows.Scan(&c.Key, &c.Replacement, &learnedAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, learnedAt); err == nil {
			c.LearnedAt = t
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// InsertReplay stores a completed replay summary.
func (s *Store) InsertReplay(ctx context.Context, summary model.ReplaySummary) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO replay_sessions (started_at, ended_at, trace_path, samples, rms_raw, rms_smoothed, stability_ratio, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.StartedAt.Format(time.RFC3339Nano),
		summary.EndedAt.Format(time.RFC3339Nano),
		summary.TracePath,
		summary.Samples,
		summary.RMSRaw,
		summary.RMSSmoothed,
		summary.StabilityRatio,
		summary.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListReplays returns the most recent replay summaries, oldest first.
// A non-positive last returns everything.
func (s *Store) ListReplays(ctx context.Context, last int) ([]model.ReplaySummary, error) {
	query := `SELECT started_at, ended_at, trace_path, samples, rms_raw, rms_smoothed, stability_ratio, duration_ms
		FROM replay_sessions ORDER BY ended_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ReplaySummary
	for rows.Next() {
		var summary model.ReplaySummary
		var started, ended string
		if err := rows.Scan(&started, &ended, &summary.TracePath, &summary.Samples,
			&summary.RMSRaw, &summary.RMSSmoothed, &summary.StabilityRatio, &summary.DurationMs); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			summary.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, ended); err == nil {
			summary.EndedAt = t
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 && len(result) > last {
		result = result[len(result)-last:]
	}
	return result, nil
}
