// Package testutil starts throwaway Postgres and Redis containers for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewPostgres starts a PostgreSQL container, applies the storefront schema and
// returns a pool connected to it. Skipped under -short.
func NewPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping test that needs a postgres container")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return pool
}

// SeedProduct inserts a catalogue row. image is stored as given, so callers can
// exercise both the single-string and array encodings.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, id, name, price, imageJSON string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, price, category, image) VALUES ($1, $2, $3::numeric, 'test', $4::jsonb)`,
		id, name, price, imageJSON,
	)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", id, err)
	}
}

// SeedUser inserts a registered account row.
func SeedUser(t *testing.T, pool *pgxpool.Pool, id, name, email string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`, id, name, email)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

// Truncate empties the given tables.
func Truncate(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// Count returns the number of rows in table.
func Count(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
