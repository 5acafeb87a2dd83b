package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database/sqlite"
)

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: database.MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Run(ctx, conn))
	// second run is a no-op
	require.NoError(t, Run(ctx, conn))

	var versions int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	assert.Equal(t, 2, versions)

	_, err = conn.Exec(ctx, `INSERT INTO tasks (id, user_id, text) VALUES ('t1', 'u1', 'hello')`)
	require.NoError(t, err)

	var minutes, importance, deleted int
	var priority, category string
	require.NoError(t, conn.QueryRow(ctx,
		`SELECT priority, category, estimated_minutes, importance, is_deleted FROM tasks WHERE id = 't1'`).
		Scan(&priority, &category, &minutes, &importance, &deleted))
	assert.Equal(t, "medium", priority)
	assert.Equal(t, "general", category)
	assert.Equal(t, 30, minutes)
	assert.Equal(t, 3, importance)
	assert.Zero(t, deleted)

	_, err = conn.Exec(ctx,
		`INSERT INTO plan_snapshots (user_id, plan_date, payload, generated_at) VALUES ('u1', '2025-06-10', '{}', '2025-06-10T08:00:00Z')`)
	require.NoError(t, err)
}

func TestUpFiles(t *testing.T) {
	for _, dir := range []string{"sqlite", "postgres"} {
		files, err := upFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_tasks.up.sql", "002_task_lifecycle.up.sql"}, files, dir)
	}
}

func TestStatements(t *testing.T) {
	got := statements("CREATE TABLE a (x INT);\n\n CREATE INDEX i ON a (x);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}
