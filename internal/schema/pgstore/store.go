package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datalake-metadata/dlmeta/internal/checksum"
	"github.com/datalake-metadata/dlmeta/internal/retry"
	"github.com/datalake-metadata/dlmeta/internal/schema"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// DefaultTable is the table used when no other is configured.
const DefaultTable = "dlmeta_schema"

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// Record is a stored schema.
type Record struct {
	Version   *semver.Version
	Body      []byte
	Checksum  string
	CreatedAt time.Time
}

// Store reads and writes schema rows.
// Safe for concurrent use when the Querier is.
type Store struct {
	db       Querier
	table    string
	ident    string
	checksum checksum.Calculator
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides the table name.
func WithTable(name string) Option {
	return func(s *Store) { s.table = name }
}

// WithChecksum overrides the checksum calculator.
func WithChecksum(c checksum.Calculator) Option {
	return func(s *Store) { s.checksum = c }
}

// New creates a Store over db. Panics if db is nil.
func New(db Querier, opts ...Option) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	s := &Store{
		db:       db,
		table:    DefaultTable,
		checksum: checksum.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ident = pgx.Identifier{s.table}.Sanitize()
	return s
}

// Table returns the table name.
func (s *Store) Table() string { return s.table }

// EnsureTable creates the schema table when it does not exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	version    text PRIMARY KEY,
	body       jsonb NOT NULL,
	checksum   text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`, s.ident)
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Put stores body under the truncated form of v, replacing any existing row.
// The body must compile as a schema.
func (s *Store) Put(ctx context.Context, v *semver.Version, body []byte) (Record, error) {
	if _, err := schema.Compile(body); err != nil {
		return Record{}, fmt.Errorf("schema %s: %w", version.Core(v), err)
	}

	rec := Record{
		Version:  version.Truncate(v),
		Body:     body,
		Checksum: s.checksum.CalculateNormalized(body),
	}
	query := fmt.Sprintf(`INSERT INTO %s (version, body, checksum) VALUES ($1, $2::jsonb, $3)
ON CONFLICT (version) DO UPDATE SET body = EXCLUDED.body, checksum = EXCLUDED.checksum
RETURNING created_at`, s.ident)

	if err := s.db.QueryRow(ctx, query, version.Core(v), string(body), rec.Checksum).Scan(&rec.CreatedAt); err != nil {
		return Record{}, fmt.Errorf("failed to store schema %s: %w", version.Core(v), err)
	}
	return rec, nil
}

// Get returns the row bound to the truncated form of v.
func (s *Store) Get(ctx context.Context, v *semver.Version) (Record, error) {
	key := version.Core(v)
	query := fmt.Sprintf(`SELECT body::text, checksum, created_at FROM %s WHERE version = $1`, s.ident)

	rec := Record{Version: version.Truncate(v)}
	var body string
	err := s.db.QueryRow(ctx, query, key).Scan(&body, &rec.Checksum, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, &dlmeta.SchemaResolutionError{Version: key, Key: s.table + ":" + key}
	}
	if err != nil {
		return Record{}, &dlmeta.SchemaResolutionError{Version: key, Key: s.table + ":" + key, Err: err}
	}
	rec.Body = []byte(body)
	return rec, nil
}

// List returns every row ordered by version. Rows whose version column is
// not a semantic version are skipped.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(`SELECT version, body::text, checksum, created_at FROM %s`, s.ident)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var raw, body string
		var rec Record
		if err := rows.Scan(&raw, &body, &rec.Checksum, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		v, err := version.Parse(raw)
		if err != nil {
			continue
		}
		rec.Version = v
		rec.Body = []byte(body)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Version.LessThan(records[j].Version)
	})
	return records, nil
}

// Catalog loads every row into an in-memory catalog.
func (s *Store) Catalog(ctx context.Context) (*schema.Catalog, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	c := schema.NewCatalog("postgres:" + s.table)
	for _, rec := range records {
		if err := c.Add(rec.Version, rec.Body); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Connect opens a pool to url, retrying while the server is unreachable or
// not ready. The pool has been pinged successfully when returned.
// Fails with dlmeta.ErrInvalidConfig for an unparsable url and with
// dlmeta.ErrConnectionFailed otherwise.
func Connect(ctx context.Context, url string, executor *retry.Executor) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("%w: database url: %v", dlmeta.ErrInvalidConfig, err)
	}

	pool, err := retry.Do(ctx, executor, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s:%d: %w", dlmeta.ErrConnectionFailed, cfg.ConnConfig.Host, cfg.ConnConfig.Port, err)
	}
	return pool, nil
}
