// Package persistence stores tasks in SQLite (local mode) or PostgreSQL
// (server mode).
package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

const taskColumns = `id, user_id, text, priority, category, due_date, estimated_minutes, importance, created_at, completed, completed_at`

// taskRow mirrors the tasks table. Nullable text columns stay raw so that a
// malformed value reaches the scorer instead of failing the read.
type taskRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Text             string
	Priority         sql.NullString
	Category         sql.NullString
	DueDate          sql.NullString
	EstimatedMinutes sql.NullInt64
	Importance       sql.NullInt64
	CreatedAt        sql.NullString
	Completed        bool
	CompletedAt      sql.NullString
}

func scanTask(row database.Row) (domain.Task, error) {
	var r taskRow
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Text,
		&r.Priority,
		&r.Category,
		&r.DueDate,
		&r.EstimatedMinutes,
		&r.Importance,
		&r.CreatedAt,
		&r.Completed,
		&r.CompletedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	return r.toDomain(), nil
}

func (r taskRow) toDomain() domain.Task {
	return domain.Task{
		ID:               r.ID,
		UserID:           r.UserID,
		Text:             r.Text,
		Priority:         domain.ParsePriorityLevel(r.Priority.String),
		Category:         domain.NewCategory(r.Category.String),
		DueDate:          domain.Timestamp(r.DueDate.String),
		EstimatedMinutes: int(r.EstimatedMinutes.Int64),
		Importance:       int(r.Importance.Int64),
		CreatedAt:        domain.Timestamp(r.CreatedAt.String),
		Completed:        r.Completed,
		CompletedAt:      domain.Timestamp(r.CompletedAt.String),
	}
}

func scanTasks(rows database.Rows) ([]domain.Task, error) {
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func findByID(row database.Row) (*domain.Task, error) {
	t, err := scanTask(row)
	if database.IsNoRows(err) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// completedAt is the completed_at value written for a completion change.
func completedAt(completed bool, now time.Time) sql.NullString {
	if !completed {
		return sql.NullString{}
	}
	return nullString(now.UTC().Format(time.RFC3339))
}

func rowsAffected(result database.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
