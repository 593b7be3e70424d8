// Package testutil provides a shared PostgreSQL test fixture, backed by
// testcontainers, for integration tests that need a real database to
// introspect against.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgres holds a running PostgreSQL container and its connection
// details.
type TestPostgres struct {
	container *tcpostgres.PostgresContainer
	DSN       string
	Host      string
	Port      int
	Database  string
	User      string
	Password  string
}

// StartTestPostgres launches a disposable PostgreSQL container for the
// duration of a test. The container is terminated automatically via
// t.Cleanup.
func StartTestPostgres(ctx context.Context, t *testing.T) *TestPostgres {
	t.Helper()

	const (
		database = "testdb"
		user     = "testuser"
		password = "testpass"
	)

	container, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername(user),
		tcpostgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("getting container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port.Port(), database)

	return &TestPostgres{
		container: container,
		DSN:       dsn,
		Host:      host,
		Port:      port.Int(),
		Database:  database,
		User:      user,
		Password:  password,
	}
}

// ResetSchema drops and recreates schema, giving a test a clean starting
// point without paying for a fresh container.
func (tp *TestPostgres) ResetSchema(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP SCHEMA IF EXISTS %q CASCADE`, schema)); err != nil {
		return fmt.Errorf("dropping schema %s: %w", schema, err)
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA %q`, schema)); err != nil {
		return fmt.Errorf("creating schema %s: %w", schema, err)
	}
	return nil
}
