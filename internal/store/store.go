// Package store handles SQLite persistence of finished attempts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/verte-zerg/monkeytui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = [][]string{
	{
		`CREATE TABLE results (
			id INTEGER PRIMARY KEY,
			attempt_id TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			variant TEXT NOT NULL,
			passage TEXT NOT NULL,
			passage_len INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			words INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE result_char_stats (
			result_id INTEGER NOT NULL REFERENCES results(id) ON DELETE CASCADE,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (result_id, char)
		)`,
		`CREATE INDEX idx_results_ended_at ON results(ended_at)`,
		`CREATE INDEX idx_results_variant ON results(variant, ended_at)`,
	},
}

// Store wraps SQLite access for attempt results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers and keeps per-connection pragmas.
	db.SetMaxOpenConns(1)
	st := &Store{db: db}
	if err := st.migrate(context.Background()); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version)
	return version, err
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return err
	}
	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if err := s.applyMigration(ctx, i); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, index int) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)
	for _, stmt := range migrations[index] {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, index+1)); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertResult stores a finished attempt and its per-character counts in one
// transaction.
func (s *Store) InsertResult(ctx context.Context, res model.Result, chars []model.CharStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer rollbackOnError(tx, &err)

	sqlRes, err := tx.ExecContext(ctx,
		`INSERT INTO results (attempt_id, started_at, ended_at, variant, passage, passage_len, wpm, accuracy, words, errors, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.AttemptID,
		formatTime(res.StartedAt),
		formatTime(res.EndedAt),
		res.Variant,
		res.Passage,
		res.PassageLen,
		res.WPM,
		res.Accuracy,
		res.Words,
		res.Errors,
		res.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("insert result: %w", err)
	}
	if id, err = sqlRes.LastInsertId(); err != nil {
		return 0, err
	}
	if err = insertCharStats(ctx, tx, id, chars); err != nil {
		return 0, fmt.Errorf("insert char stats: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertCharStats(ctx context.Context, tx *sql.Tx, resultID int64, chars []model.CharStats) error {
	if len(chars) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO result_char_stats (result_id, char, correct, incorrect) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer closeQuietly(stmt)
	for _, cs := range chars {
		if _, err := stmt.ExecContext(ctx, resultID, cs.Char, cs.Correct, cs.Incorrect); err != nil {
			return err
		}
	}
	return nil
}

// ListResults returns stored attempts matching cfg, oldest first. cfg.Last
// keeps only the most recent N.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.ResultAggregate, error) {
	var where []string
	var args []any
	if cfg.Variant != "" {
		where = append(where, "variant = ?")
		args = append(args, cfg.Variant)
	}
	if cfg.Since != nil {
		where = append(where, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := `SELECT id, ended_at, variant, wpm, accuracy, errors, duration_ms FROM results`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ended_at DESC, id DESC"
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}

	results, err := queryRows(ctx, s.db, query, args, func(rows *sql.Rows) (model.ResultAggregate, error) {
		var agg model.ResultAggregate
		var endedAt string
		if err := rows.Scan(&agg.ResultID, &endedAt, &agg.Variant, &agg.WPM, &agg.Accuracy, &agg.Errors, &agg.DurationMs); err != nil {
			return agg, err
		}
		var err error
		agg.EndedAt, err = parseTime(endedAt)
		return agg, err
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(results)
	return results, nil
}

// WeakChars aggregates character counts over the most recent window attempts,
// optionally restricted to one variant.
func (s *Store) WeakChars(ctx context.Context, window int, variant string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT id FROM results
		WHERE (? = '' OR variant = ?)
		ORDER BY ended_at DESC, id DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct), SUM(cs.incorrect)
	FROM result_char_stats cs
	JOIN recent r ON r.id = cs.result_id
	GROUP BY cs.char
	ORDER BY cs.char`
	return queryRows(ctx, s.db, query, []any{variant, variant, window}, scanCharAggregate)
}

// CharAggregatesFor aggregates per-character counts across the given results.
func (s *Store) CharAggregatesFor(ctx context.Context, resultIDs []int64) ([]model.CharAggregate, error) {
	if len(resultIDs) == 0 {
		return nil, nil
	}
	args := make([]any, len(resultIDs))
	for i, id := range resultIDs {
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(correct), SUM(incorrect)
		FROM result_char_stats
		WHERE result_id IN (%s)
		GROUP BY char
		ORDER BY char`, strings.TrimSuffix(strings.Repeat("?,", len(resultIDs)), ","))
	return queryRows(ctx, s.db, query, args, scanCharAggregate)
}

func scanCharAggregate(rows *sql.Rows) (model.CharAggregate, error) {
	var agg model.CharAggregate
	err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect)
	return agg, err
}

func queryRows[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func rollbackOnError(tx *sql.Tx, err *error) {
	if *err == nil {
		return
	}
	if rerr := tx.Rollback(); rerr != nil {
		// Best-effort rollback.
		_ = rerr
	}
}

type closer interface {
	Close() error
}

func closeQuietly(c closer) {
	if err := c.Close(); err != nil {
		// Best-effort close.
		_ = err
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
