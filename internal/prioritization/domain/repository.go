package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

// TaskReader loads the tasks a ranking pass works on.
type TaskReader interface {
	FindPending(ctx context.Context, userID uuid.UUID) ([]Task, error)
	// FindByID returns ErrTaskNotFound when no task has the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
}

// TaskLister lists every task a user still sees, completed ones included.
type TaskLister interface {
	FindAll(ctx context.Context, userID uuid.UUID) ([]Task, error)
}

// TaskRepository adds the writes used by task intake. Deleted tasks are kept
// in storage but no read returns them.
type TaskRepository interface {
	TaskReader
	TaskLister
	Save(ctx context.Context, task Task) error
	// SetCompleted marks a task done, or reopens it when completed is false.
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
