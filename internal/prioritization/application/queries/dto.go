package queries

import (
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

// Clock returns the current time. Handlers read it once per request so that
// every task in a ranking pass is scored against the same instant.
type Clock func() time.Time

// SystemClock returns a clock reporting wall time in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// RankedTaskDTO is a scored task as shown to users.
type RankedTaskDTO struct {
	Rank               int       `json:"rank"`
	TaskID             uuid.UUID `json:"task_id"`
	Text               string    `json:"text"`
	Priority           string    `json:"priority"`
	Category           string    `json:"category"`
	DueDate            string    `json:"due_date,omitempty"`
	EstimatedMinutes   int       `json:"estimated_minutes"`
	Importance         int       `json:"importance"`
	Score              float64   `json:"score"`
	Reasons            []string  `json:"reasons"`
	TimeRecommendation string    `json:"time_recommendation"`
}

func toRankedDTOs(ranked []*domain.ScoredTask, limit int) []RankedTaskDTO {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	dtos := make([]RankedTaskDTO, len(ranked))
	for i, st := range ranked {
		dtos[i] = RankedTaskDTO{
			Rank:               i + 1,
			TaskID:             st.Task.ID,
			Text:               st.Task.Text,
			Priority:           st.Task.EffectivePriority().String(),
			Category:           st.Task.EffectiveCategory().String(),
			DueDate:            string(st.Task.DueDate),
			EstimatedMinutes:   st.Task.Minutes(),
			Importance:         st.Task.EffectiveImportance(),
			Score:              st.Score,
			Reasons:            st.Reasons,
			TimeRecommendation: st.TimeRecommendation,
		}
	}
	return dtos
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func defaultMetrics(metrics observability.Metrics) observability.Metrics {
	if metrics == nil {
		return observability.NoopMetrics{}
	}
	return metrics
}

func defaultClock(clock Clock) Clock {
	if clock == nil {
		return SystemClock(nil)
	}
	return clock
}
