package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

// BreakerConfig configures the circuit breaker around a remote cache.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout time.Duration
	// FailureThreshold trips the breaker after this many consecutive failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the defaults used for Redis.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// BreakerPlanCache guards another PlanCache with a circuit breaker. While
// the breaker is open, reads are misses and writes fail fast.
type BreakerPlanCache struct {
	next    domain.PlanCache
	breaker *gobreaker.CircuitBreaker[*domain.PlanSnapshot]
}

// NewBreakerPlanCache wraps next.
func NewBreakerPlanCache(next domain.PlanCache, cfg BreakerConfig, logger *slog.Logger, metrics observability.Metrics) *BreakerPlanCache {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}

	settings := gobreaker.Settings{
		Name:        "plan-cache",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// a miss is a healthy answer
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrCacheMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			metrics.Counter(observability.MetricBreakerTransitions, 1,
				observability.T("breaker", name),
				observability.T("to", to.String()),
			)
		},
	}

	return &BreakerPlanCache{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[*domain.PlanSnapshot](settings),
	}
}

// Get implements domain.PlanCache.
func (c *BreakerPlanCache) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.PlanSnapshot, error) {
	snapshot, err := c.breaker.Execute(func() (*domain.PlanSnapshot, error) {
		return c.next.Get(ctx, userID, date)
	})
	if isBreakerRejection(err) {
		return nil, domain.ErrCacheMiss
	}
	return snapshot, err
}

// Put implements domain.PlanCache.
func (c *BreakerPlanCache) Put(ctx context.Context, snapshot domain.PlanSnapshot, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (*domain.PlanSnapshot, error) {
		return nil, c.next.Put(ctx, snapshot, ttl)
	})
	return err
}

// State reports the breaker state.
func (c *BreakerPlanCache) State() gobreaker.State {
	return c.breaker.State()
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
