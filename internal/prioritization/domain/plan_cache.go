package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCacheMiss is returned when no snapshot is stored for a user and date.
	ErrCacheMiss = errors.New("plan snapshot not cached")
)

// PlanCache keeps the most recent plan snapshot per user and local date.
type PlanCache interface {
	Get(ctx context.Context, userID uuid.UUID, date string) (*PlanSnapshot, error)
	Put(ctx context.Context, snapshot PlanSnapshot, ttl time.Duration) error
}

// PlanCacheKey returns the storage key of a user's snapshot for date
// (formatted as time.DateOnly).
func PlanCacheKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("dayfocus:plan:%s:%s", userID, date)
}
