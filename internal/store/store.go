// Package store handles SQLite persistence of finished runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/typearena/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN keeps the database inside the process; it is gone once the
// Store is closed.
const MemoryDSN = ":memory:"

// Store wraps SQLite access for run data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
// dsn is either MemoryDSN, a "file:" URI, or a filesystem path.
func Open(dsn string) (*Store, error) {
	if dsn != MemoryDSN && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
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
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			reason TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			words_completed INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			peak_wpm INTEGER NOT NULL,
			average_wpm INTEGER NOT NULL,
			level INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			incorrect_chars INTEGER NOT NULL,
			bosses_defeated INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_char_stats (
			run_id TEXT NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (run_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_mode_score ON runs(mode, score);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const runColumns = `id, mode, reason, started_at, ended_at, score, words_completed, max_combo,
	accuracy, peak_wpm, average_wpm, level, correct_chars, incorrect_chars, bosses_defeated, duration_ms`

// InsertRun stores a finished run and its per-character stats.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, chars []model.CharStats) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		run.Reason,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Score,
		run.WordsCompleted,
		run.MaxCombo,
		run.Accuracy,
		run.PeakWPM,
		run.AverageWPM,
		run.Level,
		run.CorrectChars,
		run.IncorrectChars,
		run.BossesDefeated,
		run.DurationMs,
	)
	if err != nil {
		return err
	}

	if len(chars) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_char_stats (run_id, char, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cs := range chars {
			if _, err = stmt.ExecContext(ctx, run.ID, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ListRuns returns runs in chronological order, optionally filtered by mode
// and limited to the most recent filter.Last.
func (s *Store) ListRuns(ctx context.Context, filter model.RunFilter) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, filter.Mode)
	}
	query := fmt.Sprintf(`SELECT %s FROM runs WHERE %s ORDER BY ended_at ASC`, runColumns, strings.Join(clauses, " AND "))
	runs, err := s.queryRuns(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(runs) > filter.Last {
		runs = runs[len(runs)-filter.Last:]
	}
	return runs, nil
}

// TopRuns returns the highest scoring runs, optionally for one mode.
func (s *Store) TopRuns(ctx context.Context, mode string, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM runs
		WHERE (? = '' OR mode = ?)
		ORDER BY score DESC, ended_at ASC
		LIMIT ?`, runColumns)
	return s.queryRuns(ctx, query, mode, mode, limit)
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]model.RunRecord, error) {
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

	var runs []model.RunRecord
	for rows.Next() {
		var r model.RunRecord
		var startedAt, endedAt string
		if err := rows.Scan(&r.ID, &r.Mode, &r.Reason, &startedAt, &endedAt, &r.Score, &r.WordsCompleted,
			&r.MaxCombo, &r.Accuracy, &r.PeakWPM, &r.AverageWPM, &r.Level, &r.CorrectChars,
			&r.IncorrectChars, &r.BossesDefeated, &r.DurationMs); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetWeakChars aggregates character stats over the most recent runs.
func (s *Store) GetWeakChars(ctx context.Context, window int, mode string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_runs AS (
		SELECT id FROM runs
		WHERE (? = '' OR mode = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct) AS correct, SUM(cs.incorrect) AS incorrect,
		SUM(cs.latency_sum_ms) AS latency_sum_ms, SUM(cs.latency_count) AS latency_count
	FROM run_char_stats cs
	JOIN recent_runs r ON r.id = cs.run_id
	GROUP BY cs.char`

	rows, err := s.db.QueryContext(ctx, query, mode, mode, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
