package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
)

func openMemory(t *testing.T) database.Connection {
	t.Helper()
	conn, err := NewConnection(context.Background(), database.Config{SQLitePath: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewConnection_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dayfocus.db")

	conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.Ping(ctx))
	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.FileExists(t, path)
}

func TestNewConnection_ThroughFactory(t *testing.T) {
	conn, err := database.NewConnection(context.Background(), database.Config{URL: database.MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, database.DriverSQLite, conn.Driver())
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn := openMemory(t)

	_, err := conn.Exec(ctx, `CREATE TABLE notes (id TEXT PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)

	result, err := conn.Exec(ctx, `INSERT INTO notes (id, body) VALUES (?, ?), (?, ?)`, "a", "first", "b", "second")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var body string
	require.NoError(t, conn.QueryRow(ctx, `SELECT body FROM notes WHERE id = ?`, "b").Scan(&body))
	assert.Equal(t, "second", body)

	rows, err := conn.Query(ctx, `SELECT body FROM notes ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var bodies []string
	for rows.Next() {
		var b string
		require.NoError(t, rows.Scan(&b))
		bodies = append(bodies, b)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"first", "second"}, bodies)

	err = conn.QueryRow(ctx, `SELECT body FROM notes WHERE id = ?`, "zzz").Scan(&body)
	assert.True(t, database.IsNoRows(err))
}

func TestConnection_Transaction(t *testing.T) {
	ctx := context.Background()
	conn := openMemory(t)

	_, err := conn.Exec(ctx, `CREATE TABLE notes (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	tx, err := conn.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `INSERT INTO notes (id) VALUES (?)`, "kept")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	tx, err = conn.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `INSERT INTO notes (id) VALUES (?)`, "dropped")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", dsn(database.MemoryPath))
	assert.Contains(t, dsn("/tmp/a.db"), "/tmp/a.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	assert.Contains(t, dsn("/tmp/a.db?mode=rwc"), "/tmp/a.db?mode=rwc&_pragma=journal_mode(WAL)")
}
