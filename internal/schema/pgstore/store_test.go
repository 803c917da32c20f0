package pgstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/internal/checksum"
	"github.com/datalake-metadata/dlmeta/internal/retry"
	"github.com/datalake-metadata/dlmeta/internal/testing/fixtures"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(r.rows[r.pos-1], dest) }

func assign(values, dest []any) error {
	if len(values) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

// fakeDB records statements and answers from canned results.
type fakeDB struct {
	execs   []string
	queries []string
	args    [][]any
	row     fakeRow
	rows    *fakeRows
	execErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.rows, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.row
}

var created = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func TestNew_Table(t *testing.T) {
	assert.Equal(t, DefaultTable, New(&fakeDB{}).Table())
	assert.Equal(t, "custom", New(&fakeDB{}, WithTable("custom")).Table())
	assert.Panics(t, func() { New(nil) })
}

func TestEnsureTable_QuotesIdentifier(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, New(db, WithTable(`odd"name`)).EnsureTable(context.Background()))

	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], `CREATE TABLE IF NOT EXISTS "odd""name"`)
}

func TestEnsureTable_Error(t *testing.T) {
	db := &fakeDB{execErr: errors.New("permission denied")}
	err := New(db).EnsureTable(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

func TestPut(t *testing.T) {
	body := []byte(fixtures.MinimalSchema("Dataset"))
	db := &fakeDB{row: fakeRow{values: []any{created}}}

	rec, err := New(db).Put(context.Background(), semver.MustParse("0.2.0-dev1+abc"), body)

	require.NoError(t, err)
	assert.Equal(t, "0.2.0", rec.Version.String())
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, checksum.New().CalculateNormalized(body), rec.Checksum)
	require.Len(t, db.args, 1)
	assert.Equal(t, "0.2.0", db.args[0][0])
	assert.Contains(t, db.queries[0], "ON CONFLICT (version)")
}

func TestPut_RejectsInvalidSchema(t *testing.T) {
	db := &fakeDB{}
	_, err := New(db).Put(context.Background(), semver.MustParse("0.2.0"), []byte("{"))

	require.Error(t, err)
	assert.Empty(t, db.queries, "nothing should be written")
}

func TestGet(t *testing.T) {
	db := &fakeDB{row: fakeRow{values: []any{`{"type": "object"}`, "abc", created}}}

	rec, err := New(db).Get(context.Background(), semver.MustParse("0.1.0+build"))

	require.NoError(t, err)
	assert.Equal(t, `{"type": "object"}`, string(rec.Body))
	assert.Equal(t, "abc", rec.Checksum)
	assert.Equal(t, "0.1.0", db.args[0][0])
}

func TestGet_NotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := New(db).Get(context.Background(), semver.MustParse("0.9.0"))

	require.ErrorIs(t, err, dlmeta.ErrSchemaNotFound)
	var resErr *dlmeta.SchemaResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "dlmeta_schema:0.9.0", resErr.Key)
	assert.Nil(t, resErr.Err)
}

func TestList_SortsAndSkipsBadVersions(t *testing.T) {
	schemaBody := fixtures.MinimalSchema()
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{"0.10.0", schemaBody, "c", created},
		{"garbage", schemaBody, "x", created},
		{"0.2.0", schemaBody, "b", created},
		{"0.0.1", schemaBody, "a", created},
	}}}

	records, err := New(db).List(context.Background())

	require.NoError(t, err)
	var got []string
	for _, r := range records {
		got = append(got, r.Version.String())
	}
	assert.Equal(t, []string{"0.0.1", "0.2.0", "0.10.0"}, got)
}

func TestCatalog_FromRows(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{"0.1.0", fixtures.MinimalSchema("Sample_Sheets"), "a", created},
	}}}

	c, err := New(db).Catalog(context.Background())
	require.NoError(t, err)

	s, err := c.Resolve(semver.MustParse("0.1.0-dev2"))
	require.NoError(t, err)
	assert.Contains(t, s.Required, "Sample_Sheets")
	assert.True(t, strings.HasPrefix(c.Location(), "postgres:"))
}

func TestConnect_InvalidURL(t *testing.T) {
	executor := retry.NewExecutor(retry.NewConnectClassifier(), retry.ConstantBackoff{})
	_, err := Connect(context.Background(), "postgres://localhost:notaport/db", executor)

	assert.ErrorIs(t, err, dlmeta.ErrInvalidConfig)
}

func TestConnect_Unreachable(t *testing.T) {
	retries := 0
	executor := retry.NewExecutor(retry.NewConnectClassifier(), retry.ConstantBackoff{Delay: time.Millisecond, Attempts: 2}).
		WithOnRetry(func(int, error, time.Duration) { retries++ })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := Connect(ctx, "postgres://dlmeta@127.0.0.1:1/dlmeta?connect_timeout=1", executor)

	require.ErrorIs(t, err, dlmeta.ErrConnectionFailed)
	assert.Equal(t, 2, retries)
}
