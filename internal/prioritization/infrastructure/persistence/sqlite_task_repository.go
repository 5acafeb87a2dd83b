package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	conn database.Executor
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Executor) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

// FindPending returns the user's incomplete tasks in insertion order.
func (r *SQLiteTaskRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND completed = 0 AND is_deleted = 0 ORDER BY rowid`,
		userID.String())
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// FindAll returns the user's tasks, completed ones included, in insertion order.
func (r *SQLiteTaskRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND is_deleted = 0 ORDER BY rowid`,
		userID.String())
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// FindByID returns a task by id.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return findByID(r.conn.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND is_deleted = 0`, id.String()))
}

// Save inserts or replaces a task.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t domain.Task) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO tasks (id, user_id, text, priority, category, due_date, estimated_minutes, importance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			text = excluded.text,
			priority = excluded.priority,
			category = excluded.category,
			due_date = excluded.due_date,
			estimated_minutes = excluded.estimated_minutes,
			importance = excluded.importance`,
		t.ID.String(),
		t.UserID.String(),
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
func (r *SQLiteTaskRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ? AND is_deleted = 0`,
		completed, completedAt(completed, time.Now()), id.String())
	if err != nil {
		return err
	}
	return rowsAffected(result)
}

// Delete soft-deletes a task. The row stays for auditing.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.conn.Exec(ctx,
		`UPDATE tasks SET is_deleted = 1, deleted_at = ? WHERE id = ? AND is_deleted = 0`,
		time.Now().UTC().Format(time.RFC3339), id.String())
	if err != nil {
		return err
	}
	return rowsAffected(result)
}
