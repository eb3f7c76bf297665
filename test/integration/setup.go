//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a throwaway Postgres container, applies the project
// migrations and returns a connected pool. The container is torn down with
// the test.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:17.7"),
		postgres.WithDatabase("teamup_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	applyMigrations(t, pool)

	t.Cleanup(func() {
		pool.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return pool
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	dir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "could not read the migrations directory")

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	require.NotEmpty(t, files, "no migration files found")

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		_, err = pool.Exec(context.Background(), string(content))
		require.NoError(t, err, "migration %s failed", file)
	}
}

// seedUsers inserts profile projection rows for the given user IDs
func seedUsers(t *testing.T, pool *pgxpool.Pool, ids ...int64) {
	for _, id := range ids {
		_, err := pool.Exec(context.Background(), `
			INSERT INTO users (id, first_name, last_name, section, year)
			VALUES ($1, $2, 'Tester', 'A', 2)
		`, id, fmt.Sprintf("User%d", id))
		require.NoError(t, err)
	}
}
