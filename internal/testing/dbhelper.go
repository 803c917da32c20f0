// Package testing holds helpers for tests that need a PostgreSQL server.
package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datalake-metadata/dlmeta/internal/testinfra"
)

// EnvTestDatabaseURL points integration tests at an existing server instead
// of a container.
const EnvTestDatabaseURL = "DLMETA_TEST_DATABASE_URL"

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error

	tableSeq atomic.Int64
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: DLMETA_TEST_DATABASE_URL > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(EnvTestDatabaseURL); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", EnvTestDatabaseURL, err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// GetTestPool opens a pool that is closed when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("Failed to reach test database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// UniqueTable returns a table name unused by other tests in this process and
// drops the table when the test completes.
func UniqueTable(t *testing.T, pool *pgxpool.Pool, prefix string) string {
	t.Helper()

	name := fmt.Sprintf("%s_%d_%d", prefix, os.Getpid(), tableSeq.Add(1))
	t.Cleanup(func() {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{name}.Sanitize())
		if _, err := pool.Exec(context.Background(), query); err != nil {
			t.Logf("Warning: failed to drop %s: %v", name, err)
		}
	})
	return name
}
