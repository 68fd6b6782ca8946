// Package store persists cleaned startup records in PostgreSQL. The store
// is write-mostly: the pipeline owns merging, so an upsert replaces the row
// with the latest cleaned state rather than re-merging in SQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/fennecworks/dealscope/pkg/errors"
	"github.com/fennecworks/dealscope/pkg/record"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &errors.StoreError{Operation: "open", Err: err}
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &errors.StoreError{Operation: "ping", Err: err}
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection pool, for tests and embedding.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS startups (
    id                 SERIAL PRIMARY KEY,
    name               VARCHAR(255) NOT NULL UNIQUE,
    description        TEXT,
    sector             VARCHAR(100),
    location           VARCHAR(100),
    website            VARCHAR(500),
    email              VARCHAR(255),

    funding_raised     BIGINT DEFAULT 0,
    revenue            BIGINT DEFAULT 0,
    employees          INTEGER DEFAULT 0,
    founded_year       INTEGER,

    founders           TEXT[],
    metrics            JSONB,
    extra              JSONB,

    sources            TEXT[],
    data_quality_score INTEGER DEFAULT 0,
    confidence         VARCHAR(10),
    predicted_score    INTEGER DEFAULT 0,

    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_startups_sector     ON startups(sector);
CREATE INDEX IF NOT EXISTS idx_startups_location   ON startups(location);
CREATE INDEX IF NOT EXISTS idx_startups_confidence ON startups(confidence);

CREATE TABLE IF NOT EXISTS collection_runs (
    id           SERIAL PRIMARY KEY,
    collected    INTEGER NOT NULL,
    valid_count  INTEGER NOT NULL,
    dropped      INTEGER NOT NULL,
    merged       INTEGER NOT NULL,
    unique_count INTEGER NOT NULL,
    started_at   TIMESTAMPTZ NOT NULL,
    finished_at  TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables and indexes if missing. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return &errors.StoreError{Operation: "ensure schema", Err: err}
	}
	return nil
}

const upsertSQL = `
INSERT INTO startups (
    name, description, sector, location, website, email,
    funding_raised, revenue, employees, founded_year,
    founders, metrics, extra,
    sources, data_quality_score, confidence, predicted_score,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
          $11, $12, $13, $14, $15, $16, $17, NOW())
ON CONFLICT (name) DO UPDATE SET
    description        = EXCLUDED.description,
    sector             = EXCLUDED.sector,
    location           = EXCLUDED.location,
    website            = EXCLUDED.website,
    email              = EXCLUDED.email,
    funding_raised     = EXCLUDED.funding_raised,
    revenue            = EXCLUDED.revenue,
    employees          = EXCLUDED.employees,
    founded_year       = EXCLUDED.founded_year,
    founders           = EXCLUDED.founders,
    metrics            = EXCLUDED.metrics,
    extra              = EXCLUDED.extra,
    sources            = EXCLUDED.sources,
    data_quality_score = EXCLUDED.data_quality_score,
    confidence         = EXCLUDED.confidence,
    predicted_score    = EXCLUDED.predicted_score,
    updated_at         = NOW()
`

// Upsert writes one cleaned record, keyed by name.
func (s *Store) Upsert(ctx context.Context, rec record.Record) error {
	metrics, err := marshalJSONB(rec.Metrics)
	if err != nil {
		return &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
	}
	extra, err := marshalJSONB(rec.Extra)
	if err != nil {
		return &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
	}

	_, err = s.db.ExecContext(ctx, upsertSQL,
		rec.Name, rec.Description, rec.Sector, rec.Location, rec.Website, rec.Email,
		rec.FundingRaised, rec.Revenue, rec.Employees, nullableInt(rec.FoundedYear),
		pq.Array(rec.Founders), metrics, extra,
		pq.Array(rec.Sources), rec.DataQualityScore, string(rec.Confidence), rec.PredictedScore,
	)
	if err != nil {
		return &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
	}
	return nil
}

// UpsertBatch writes a batch in one transaction and returns the count
// written. The batch is all-or-nothing.
func (s *Store) UpsertBatch(ctx context.Context, records []record.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &errors.StoreError{Operation: "begin", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return 0, &errors.StoreError{Operation: "prepare", Err: err}
	}
	defer stmt.Close()

	for _, rec := range records {
		metrics, err := marshalJSONB(rec.Metrics)
		if err != nil {
			return 0, &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
		}
		extra, err := marshalJSONB(rec.Extra)
		if err != nil {
			return 0, &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
		}
		_, err = stmt.ExecContext(ctx,
			rec.Name, rec.Description, rec.Sector, rec.Location, rec.Website, rec.Email,
			rec.FundingRaised, rec.Revenue, rec.Employees, nullableInt(rec.FoundedYear),
			pq.Array(rec.Founders), metrics, extra,
			pq.Array(rec.Sources), rec.DataQualityScore, string(rec.Confidence), rec.PredictedScore,
		)
		if err != nil {
			return 0, &errors.StoreError{Operation: "upsert", Entity: rec.Name, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &errors.StoreError{Operation: "commit", Err: err}
	}
	return len(records), nil
}

const selectColumns = `
    name, description, sector, location, website, email,
    funding_raised, revenue, employees, founded_year,
    founders, metrics, extra,
    sources, data_quality_score, confidence, predicted_score
`

// GetByName fetches one record, matching the name case-insensitively.
func (s *Store) GetByName(ctx context.Context, name string) (record.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM startups WHERE LOWER(name) = LOWER($1)`, name)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return record.Record{}, errors.NewNotFoundError("startup", name)
	}
	if err != nil {
		return record.Record{}, &errors.StoreError{Operation: "get", Entity: name, Err: err}
	}
	return rec, nil
}

// ListOptions filter List results. Zero values mean no filtering.
type ListOptions struct {
	Sector     string
	Location   string
	Confidence record.Confidence
	Limit      int
}

// List returns records ordered by quality score descending, then name.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]record.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM startups WHERE 1=1`
	var args []any

	if opts.Sector != "" {
		args = append(args, opts.Sector)
		query += ` AND sector = $` + strconv.Itoa(len(args))
	}
	if opts.Location != "" {
		args = append(args, opts.Location)
		query += ` AND location = $` + strconv.Itoa(len(args))
	}
	if opts.Confidence != "" {
		args = append(args, string(opts.Confidence))
		query += ` AND confidence = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY data_quality_score DESC, name ASC`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &errors.StoreError{Operation: "list", Err: err}
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &errors.StoreError{Operation: "scan", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.StoreError{Operation: "list", Err: err}
	}
	return records, nil
}

// RunStats is one collection run's accounting, persisted for trend queries.
type RunStats struct {
	Collected  int
	Valid      int
	Dropped    int
	Merged     int
	Unique     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// LogRun appends one run's stats to collection_runs.
func (s *Store) LogRun(ctx context.Context, stats RunStats) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO collection_runs
            (collected, valid_count, dropped, merged, unique_count, started_at, finished_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		stats.Collected, stats.Valid, stats.Dropped, stats.Merged, stats.Unique,
		stats.StartedAt, stats.FinishedAt,
	)
	if err != nil {
		return &errors.StoreError{Operation: "log run", Err: err}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (record.Record, error) {
	var rec record.Record
	var description, sector, location, website, email, confidence sql.NullString
	var foundedYear sql.NullInt64
	var metrics, extra []byte
	var founders, sources pq.StringArray

	err := row.Scan(
		&rec.Name, &description, &sector, &location, &website, &email,
		&rec.FundingRaised, &rec.Revenue, &rec.Employees, &foundedYear,
		&founders, &metrics, &extra,
		&sources, &rec.DataQualityScore, &confidence, &rec.PredictedScore,
	)
	if err != nil {
		return record.Record{}, err
	}

	rec.Description = description.String
	rec.Sector = sector.String
	rec.Location = location.String
	rec.Website = website.String
	rec.Email = email.String
	rec.Confidence = record.Confidence(confidence.String)
	rec.FoundedYear = int(foundedYear.Int64)
	rec.Founders = []string(founders)
	rec.Sources = []string(sources)

	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &rec.Metrics); err != nil {
			return record.Record{}, err
		}
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &rec.Extra); err != nil {
			return record.Record{}, err
		}
	}
	return rec, nil
}

func marshalJSONB(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
