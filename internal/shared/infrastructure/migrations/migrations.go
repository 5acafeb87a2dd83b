// Package migrations applies the embedded schema for either backend.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationFS embed.FS

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`

// Run applies every pending .up.sql migration for conn's driver, in file
// name order. Each file runs in its own transaction and is recorded in
// schema_migrations, so Run is safe to call on every start.
func Run(ctx context.Context, conn database.Connection) error {
	dir, err := dirFor(conn.Driver())
	if err != nil {
		return err
	}

	files, err := upFiles(dir)
	if err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, file := range files {
		applied, err := isApplied(ctx, conn, file)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(ctx, conn, dir, file); err != nil {
			return err
		}
	}
	return nil
}

func dirFor(driver database.Driver) (string, error) {
	switch driver {
	case database.DriverSQLite:
		return "sqlite", nil
	case database.DriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, driver)
	}
}

func upFiles(dir string) ([]string, error) {
	entries, err := migrationFS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func isApplied(ctx context.Context, conn database.Connection, version string) (bool, error) {
	query := `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`
	if conn.Driver() == database.DriverPostgres {
		query = `SELECT COUNT(*) FROM schema_migrations WHERE version = $1`
	}

	var count int
	if err := conn.QueryRow(ctx, query, version).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func apply(ctx context.Context, conn database.Connection, dir, file string) (err error) {
	body, err := migrationFS.ReadFile(dir + "/" + file)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", file, err)
	}

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", file, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, stmt := range statements(string(body)) {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	record := `INSERT INTO schema_migrations (version) VALUES (?)`
	if conn.Driver() == database.DriverPostgres {
		record = `INSERT INTO schema_migrations (version) VALUES ($1)`
	}
	if _, err = tx.Exec(ctx, record, file); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", file, err)
	}

	return tx.Commit(ctx)
}

// statements splits a migration file on semicolons. Migration files must not
// contain semicolons inside string literals.
func statements(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
