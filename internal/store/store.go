// Package store persists band-ratio records in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cwbudde/algo-bandratio/internal/report"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	object         TEXT    NOT NULL,
	ratio          REAL    NOT NULL,
	fullArea       REAL    NOT NULL,
	featureArea    REAL    NOT NULL,
	featureStart   REAL    NOT NULL,
	fullSamples    INTEGER NOT NULL,
	featureSamples INTEGER NOT NULL,
	maxDepth       REAL    NOT NULL,
	stage          TEXT    NOT NULL DEFAULT '',
	error          TEXT    NOT NULL DEFAULT '',
	computedAt     REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_object ON results(object);
`

// Store appends result records to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends rec.
func (s *Store) Save(ctx context.Context, rec report.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (object, ratio, fullArea, featureArea, featureStart,
			fullSamples, featureSamples, maxDepth, stage, error, computedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Object, rec.Ratio, rec.FullArea, rec.FeatureArea, rec.FeatureStart,
		rec.FullSamples, rec.FeatureSamples, rec.MaxDepth, rec.Stage, rec.Error,
		unixFromTime(rec.ComputedAt))
	if err != nil {
		return fmt.Errorf("insert result %s: %w", rec.Object, err)
	}

	return nil
}

// Results returns all records, oldest first.
func (s *Store) Results(ctx context.Context) ([]report.Record, error) {
	return s.query(ctx, `
		SELECT object, ratio, fullArea, featureArea, featureStart, fullSamples,
			featureSamples, maxDepth, stage, error, computedAt
		FROM results
		ORDER BY computedAt ASC, id ASC
	`)
}

// ResultsFor returns the records of one object, oldest first.
func (s *Store) ResultsFor(ctx context.Context, object string) ([]report.Record, error) {
	return s.query(ctx, `
		SELECT object, ratio, fullArea, featureArea, featureStart, fullSamples,
			featureSamples, maxDepth, stage, error, computedAt
		FROM results
		WHERE object = ?
		ORDER BY computedAt ASC, id ASC
	`, object)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]report.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var r report.Record
		var computedAt float64
		if err := rows.Scan(&r.Object, &r.Ratio, &r.FullArea, &r.FeatureArea, &r.FeatureStart,
			&r.FullSamples, &r.FeatureSamples, &r.MaxDepth, &r.Stage, &r.Error, &computedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.ComputedAt = timeFromUnix(computedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

func timeFromUnix(ts float64) time.Time {
	return time.UnixMicro(int64(ts*1e6 + 0.5)).UTC()
}
