package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements domain.TaskRepository using PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Executor
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(conn database.Executor) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

// FindPending returns the user's incomplete tasks, oldest first.
func (r *PostgresTaskRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND NOT completed AND NOT is_deleted ORDER BY created_at NULLS FIRST, id`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// FindAll returns the user's tasks, completed ones included, oldest first.
func (r *PostgresTaskRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND NOT is_deleted ORDER BY created_at NULLS FIRST, id`,
		userID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// FindByID returns a task by id.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return findByID(r.conn.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND NOT is_deleted`, id))
}

// Save inserts or updates a task.
func (r *PostgresTaskRepository) Save(ctx context.Context, t domain.Task) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO tasks (id, user_id, text, priority, category, due_date, estimated_minutes, importance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			priority = EXCLUDED.priority,
			category = EXCLUDED.category,
			due_date = EXCLUDED.due_date,
			estimated_minutes = EXCLUDED.estimated_minutes,
			importance = EXCLUDED.importance`,
		t.ID,
		t.UserID,
		t.Text,
		t.EffectivePriority().String(),
		t.EffectiveCategory().String(),
		nullString(string(t.DueDate)),
		t.Minutes(),
		t.EffectiveImportance(),
		nullString(string(t.CreatedAt)),
	)
	return err
}

// SetCompleted marks a task done or reopens it.
func (r *PostgresTaskRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE tasks SET completed = $1, completed_at = $2 WHERE id = $3 AND NOT is_deleted`,
		completed, completedAt(completed, time.Now()), id)
	if err != nil {
		return err
	}
	return rowsAffected(result)
}

// Delete soft-deletes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE tasks SET is_deleted = TRUE, deleted_at = $1 WHERE id = $2 AND NOT is_deleted`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return rowsAffected(result)
}
