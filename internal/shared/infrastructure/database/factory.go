package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrDriverNotLinked   = errors.New("database driver not linked into binary")
)

// Config holds database configuration.
type Config struct {
	// Driver selects the backend. Empty means detect from URL.
	Driver Driver

	// URL is the PostgreSQL connection string, or a SQLite path.
	URL string

	// SQLitePath is the SQLite database file. Defaults to ~/.dayfocus/dayfocus.db.
	SQLitePath string

	// MaxConns is the maximum number of connections (PostgreSQL only).
	MaxConns int
}

// NewConnection opens the backend selected by cfg.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}

	switch driver {
	case DriverPostgres:
		if newPostgresConnection == nil {
			return nil, fmt.Errorf("%w: %s", ErrDriverNotLinked, driver)
		}
		return newPostgresConnection(ctx, cfg)
	case DriverSQLite:
		if newSQLiteConnection == nil {
			return nil, fmt.Errorf("%w: %s", ErrDriverNotLinked, driver)
		}
		if cfg.SQLitePath == "" && cfg.URL != "" {
			cfg.SQLitePath = strings.TrimPrefix(cfg.URL, "sqlite://")
		}
		return newSQLiteConnection(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.URL)
	}
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".dayfocus", "dayfocus.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	if path == MemoryPath {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// Backends register themselves from their package init so that importing
// this package alone does not pull in every driver.
var (
	newPostgresConnection func(ctx context.Context, cfg Config) (Connection, error)
	newSQLiteConnection   func(ctx context.Context, cfg Config) (Connection, error)
)

// RegisterPostgresDriver registers the PostgreSQL connection factory.
func RegisterPostgresDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newPostgresConnection = fn
}

// RegisterSQLiteDriver registers the SQLite connection factory.
func RegisterSQLiteDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newSQLiteConnection = fn
}
