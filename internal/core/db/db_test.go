package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a migrated SQLite database in a temporary directory.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := Open("sqlite://" + filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = MigrateUp(context.Background(), database)
	require.NoError(t, err)
	return database
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open("mysql://localhost/graph")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database scheme")
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open("://nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid database URL")
}

func TestDataSourceOf(t *testing.T) {
	tests := []struct {
		url    string
		driver string
		dsn    string
	}{
		{"sqlite://graph.db", "sqlite3", "graph.db?_foreign_keys=on"},
		{"sqlite:///var/lib/graph.db", "sqlite3", "/var/lib/graph.db?_foreign_keys=on"},
		{"sqlite://graph.db?_foreign_keys=off", "sqlite3", "graph.db?_foreign_keys=off"},
		{"sqlite://graph.db?cache=shared", "sqlite3", "graph.db?_foreign_keys=on&cache=shared"},
		{"postgres://gf@localhost/graph", "postgres", "postgres://gf@localhost/graph"},
		{"postgresql://gf@localhost/graph", "postgres", "postgresql://gf@localhost/graph"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := dataSourceOf(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}

	_, _, err := dataSourceOf("sqlite://")
	assert.ErrorContains(t, err, "sqlite path is empty")
}

func TestOpen_SQLiteForeignKeys(t *testing.T) {
	database, err := Open("sqlite://" + filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	defer database.Close()

	var enabled int
	require.NoError(t, database.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)
}

func TestMigrateUp(t *testing.T) {
	ctx := context.Background()
	database, err := Open("sqlite://" + filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer database.Close()

	before, err := MigrateStatus(ctx, database)
	require.NoError(t, err)
	require.NotEmpty(t, before)
	for _, s := range before {
		assert.False(t, s.Applied, "migration %s applied before MigrateUp", s.ID)
	}

	ran, err := MigrateUp(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_graph_schema.sql"}, ran)

	again, err := MigrateUp(ctx, database)
	require.NoError(t, err)
	assert.Empty(t, again)

	after, err := MigrateStatus(ctx, database)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.True(t, after[0].Applied)
	assert.NotNil(t, after[0].AppliedAt)
	assert.Equal(t, before[0].Checksum, after[0].Checksum)

	for _, table := range []string{"nodes", "links"} {
		var n int
		require.NoError(t, database.Get(&n, "SELECT COUNT(*) FROM "+table))
		assert.Zero(t, n)
	}
}

func TestMigrateUp_ChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := database.Exec("UPDATE migrations SET checksum = 'tampered'")
	require.NoError(t, err)

	_, err = MigrateUp(ctx, database)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestMigrateUp_UnknownMigration(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := database.Exec(
		"INSERT INTO migrations (migration_id, checksum, applied_at, execution_ms) VALUES (?, ?, ?, ?)",
		"999_future.sql", "abc", "2026-01-01T00:00:00Z", 1,
	)
	require.NoError(t, err)

	_, err = MigrateUp(ctx, database)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exists in database but not in embedded files")
}

func TestSplitStatements(t *testing.T) {
	sql := `-- header; with a semicolon
CREATE TABLE a (x TEXT);

-- trailing comment
CREATE INDEX idx_a ON a (x);
`
	got := splitStatements(sql)
	assert.Equal(t, []string{"CREATE TABLE a (x TEXT)", "CREATE INDEX idx_a ON a (x)"}, got)
}

func TestLoadQueries(t *testing.T) {
	database := openTestDB(t)
	queries, err := LoadQueries(database)
	require.NoError(t, err)

	for _, name := range []string{
		"insert-node", "insert-link", "list-nodes", "list-links",
		"count-nodes", "count-links", "delete-links", "delete-nodes",
	} {
		_, err := queries.query(name)
		assert.NoError(t, err, name)
	}

	_, err = queries.Exec(context.Background(), "no-such-query")
	assert.EqualError(t, err, "query not found: no-such-query")
}
