// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/cryptex/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps a fixed-width fraction so stored UTC times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for solved runs.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			dials INTEGER NOT NULL,
			alphabet_size INTEGER NOT NULL,
			taps INTEGER NOT NULL,
			drags INTEGER NOT NULL,
			advances INTEGER NOT NULL,
			misses INTEGER NOT NULL,
			cooldown_drops INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a solved run.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, ended_at, dials, alphabet_size, taps, drags, advances, misses, cooldown_drops, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.UTC().Format(timeLayout),
		run.EndedAt.UTC().Format(timeLayout),
		run.Dials,
		run.AlphabetSize,
		run.Taps,
		run.Drags,
		run.Advances,
		run.Misses,
		run.CooldownDrops,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns stored runs, oldest first, filtered by the stats config.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, run_id, started_at, ended_at, dials, alphabet_size, taps, drags, advances, misses, cooldown_drops, duration_ms
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var startedAt, endedAt string
		if err := rows.Scan(&agg.ID, &agg.RunID, &startedAt, &endedAt, &agg.Dials, &agg.AlphabetSize,
			&agg.Taps, &agg.Drags, &agg.Advances, &agg.Misses, &agg.CooldownDrops, &agg.DurationMs); err != nil {
			return nil, err
		}
		if agg.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if agg.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}
