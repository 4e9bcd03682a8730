// Package store handles SQLite persistence of run history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/aocrun/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed-width so that started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for recorded part results.
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
		`CREATE TABLE IF NOT EXISTS part_results (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			year INTEGER NOT NULL,
			day INTEGER NOT NULL,
			part INTEGER NOT NULL,
			mode TEXT NOT NULL,
			output TEXT NOT NULL,
			runs INTEGER NOT NULL,
			min_ns INTEGER NOT NULL,
			max_ns INTEGER NOT NULL,
			mean_ns INTEGER NOT NULL,
			median_ns INTEGER NOT NULL,
			passed INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_part_results_day ON part_results(year, day);`,
		`CREATE INDEX IF NOT EXISTS idx_part_results_started_at ON part_results(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResults stores the part results of one day in a single transaction.
func (s *Store) InsertResults(ctx context.Context, records []model.RunRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
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

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO part_results (run_id, started_at, year, day, part, mode, output, runs, min_ns, max_ns, mean_ns, median_ns, passed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, r := range records {
		var passed any
		if r.Passed != nil {
			passed = *r.Passed
		}
		if _, err = stmt.ExecContext(ctx,
			r.RunID,
			r.StartedAt.UTC().Format(timeLayout),
			r.Year,
			r.Day,
			r.Part,
			string(r.Mode),
			r.Output,
			r.Runs,
			int64(r.Min),
			int64(r.Max),
			int64(r.Mean),
			int64(r.Median),
			passed,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListResults returns recorded results oldest first. Last keeps only the
// most recent N rows.
func (s *Store) ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Year != 0 {
		clauses = append(clauses, "year = ?")
		args = append(args, filter.Year)
	}
	if filter.Day != 0 {
		clauses = append(clauses, "day = ?")
		args = append(args, filter.Day)
	}
	limit := -1
	if filter.Last > 0 {
		limit = filter.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT run_id, started_at, year, day, part, mode, output, runs, min_ns, max_ns, mean_ns, median_ns, passed
		FROM (
			SELECT * FROM part_results
			WHERE %s
			ORDER BY started_at DESC, id DESC
			LIMIT ?
		)
		ORDER BY started_at ASC, id ASC`, strings.Join(clauses, " AND "))
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

	var records []model.RunRecord
	for rows.Next() {
		var (
			r                           model.RunRecord
			startedAt, mode             string
			minNs, maxNs, meanNs, medNs int64
			passed                      sql.NullBool
		)
		if err := rows.Scan(&r.RunID, &startedAt, &r.Year, &r.Day, &r.Part, &mode, &r.Output, &r.Runs,
			&minNs, &maxNs, &meanNs, &medNs, &passed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, err
		}
		r.StartedAt = parsed
		r.Mode = model.Mode(mode)
		r.Min = time.Duration(minNs)
		r.Max = time.Duration(maxNs)
		r.Mean = time.Duration(meanNs)
		r.Median = time.Duration(medNs)
		if passed.Valid {
			v := passed.Bool
			r.Passed = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
