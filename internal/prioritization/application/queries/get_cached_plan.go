package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// GetCachedPlanQuery asks for the last plan generated for a date.
type GetCachedPlanQuery struct {
	UserID uuid.UUID
	Date   string // YYYY-MM-DD; empty means today
}

// GetCachedPlanHandler handles the GetCachedPlanQuery.
type GetCachedPlanHandler struct {
	cache   domain.PlanCache
	clock   Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewGetCachedPlanHandler creates a new GetCachedPlanHandler.
func NewGetCachedPlanHandler(cache domain.PlanCache, clock Clock, logger *slog.Logger, metrics observability.Metrics) *GetCachedPlanHandler {
	return &GetCachedPlanHandler{
		cache:   cache,
		clock:   defaultClock(clock),
		logger:  defaultLogger(logger),
		metrics: defaultMetrics(metrics),
	}
}

// Handle executes the GetCachedPlanQuery. It returns domain.ErrCacheMiss when
// no plan has been generated for the date.
func (h *GetCachedPlanHandler) Handle(ctx context.Context, query GetCachedPlanQuery) (*domain.PlanSnapshot, error) {
	date := query.Date
	if date == "" {
		date = h.clock().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if h.cache == nil {
		h.metrics.Counter(observability.MetricCacheMisses, 1)
		return nil, domain.ErrCacheMiss
	}

	snapshot, err := h.cache.Get(ctx, query.UserID, date)
	switch {
	case errors.Is(err, domain.ErrCacheMiss):
		h.metrics.Counter(observability.MetricCacheMisses, 1)
		return nil, domain.ErrCacheMiss
	case err != nil:
		h.metrics.Counter(observability.MetricCacheErrors, 1, observability.T("op", "get"))
		return nil, fmt.Errorf("read cached plan: %w", err)
	}

	h.metrics.Counter(observability.MetricCacheHits, 1)
	h.logger.DebugContext(ctx, "cached plan served", "user_id", query.UserID, "date", date)
	return snapshot, nil
}
