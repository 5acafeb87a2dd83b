package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultEstimatedMinutes is used when a task carries no estimate.
	DefaultEstimatedMinutes = 30
	// DefaultImportance is used when a task carries no importance.
	DefaultImportance = 3

	MinImportance = 1
	MaxImportance = 5
)

var (
	ErrEmptyText = errors.New("task text cannot be empty")
)

// Task is a pending work item as read from the task store. The scoring core
// only reads it; zero values mean "not provided" and resolve to defaults.
type Task struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	Text             string        `json:"text"`
	Priority         PriorityLevel `json:"priority"`
	Category         Category      `json:"category"`
	DueDate          Timestamp     `json:"due_date,omitempty"`
	EstimatedMinutes int           `json:"estimated_minutes,omitempty"`
	Importance       int           `json:"importance,omitempty"`
	CreatedAt        Timestamp     `json:"created_at,omitempty"`
	Completed        bool          `json:"completed"`
	CompletedAt      Timestamp     `json:"completed_at,omitempty"`
}

// NewTask creates a task with the store defaults applied.
func NewTask(userID uuid.UUID, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	return Task{
		ID:               uuid.New(),
		UserID:           userID,
		Text:             text,
		Priority:         PriorityMedium,
		Category:         CategoryGeneral,
		EstimatedMinutes: DefaultEstimatedMinutes,
		Importance:       DefaultImportance,
	}, nil
}

// Minutes returns the estimate, defaulting to 30.
func (t Task) Minutes() int {
	if t.EstimatedMinutes <= 0 {
		return DefaultEstimatedMinutes
	}
	return t.EstimatedMinutes
}

// EffectiveImportance returns importance within 1..5, defaulting to 3.
func (t Task) EffectiveImportance() int {
	switch {
	case t.Importance == 0:
		return DefaultImportance
	case t.Importance < MinImportance:
		return MinImportance
	case t.Importance > MaxImportance:
		return MaxImportance
	default:
		return t.Importance
	}
}

// EffectivePriority returns the priority level, defaulting to medium.
func (t Task) EffectivePriority() PriorityLevel {
	return t.Priority.Effective()
}

// EffectiveCategory returns the normalized category.
func (t Task) EffectiveCategory() Category {
	return t.Category.Normalized()
}
