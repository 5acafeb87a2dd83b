package persistence

import (
	"fmt"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
)

// NewTaskRepository returns the repository matching conn's driver.
func NewTaskRepository(conn database.Connection) (domain.TaskRepository, error) {
	switch conn.Driver() {
	case database.DriverSQLite:
		return NewSQLiteTaskRepository(conn), nil
	case database.DriverPostgres:
		return NewPostgresTaskRepository(conn), nil
	default:
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, conn.Driver())
	}
}
