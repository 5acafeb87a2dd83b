package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AggregateType = "DailyPlan"

	RoutingKeyPlanGenerated = "dayfocus.plan.generated"
)

// PlannedTask is the stored form of a task placed in a plan.
type PlannedTask struct {
	TaskID             uuid.UUID `json:"task_id"`
	Text               string    `json:"text"`
	Minutes            int       `json:"minutes"`
	Score              float64   `json:"score"`
	Reasons            []string  `json:"reasons,omitempty"`
	TimeRecommendation string    `json:"time_recommendation,omitempty"`
}

// PlanSnapshot is a serializable copy of a DailyPlan. Plans themselves are
// never stored; callers that want to keep one store a snapshot.
type PlanSnapshot struct {
	UserID       uuid.UUID     `json:"user_id"`
	Date         string        `json:"date"`
	GeneratedAt  time.Time     `json:"generated_at"`
	MorningFocus []PlannedTask `json:"morning_focus"`
	QuickWins    []PlannedTask `json:"quick_wins"`
	Afternoon    []PlannedTask `json:"afternoon"`
	TotalMinutes int           `json:"total_minutes"`
}

// NewPlanSnapshot projects plan into its stored form. The date is the local
// calendar date of generatedAt.
func NewPlanSnapshot(userID uuid.UUID, plan *DailyPlan, generatedAt time.Time) PlanSnapshot {
	return PlanSnapshot{
		UserID:       userID,
		Date:         generatedAt.Format(time.DateOnly),
		GeneratedAt:  generatedAt,
		MorningFocus: toPlannedTasks(plan.MorningFocus),
		QuickWins:    toPlannedTasks(plan.QuickWins),
		Afternoon:    toPlannedTasks(plan.Afternoon),
		TotalMinutes: plan.TotalMinutes,
	}
}

func toPlannedTasks(in []*ScoredTask) []PlannedTask {
	out := make([]PlannedTask, 0, len(in))
	for _, st := range in {
		out = append(out, PlannedTask{
			TaskID:             st.Task.ID,
			Text:               st.Task.Text,
			Minutes:            st.Task.Minutes(),
			Score:              st.Score,
			Reasons:            st.Reasons,
			TimeRecommendation: st.TimeRecommendation,
		})
	}
	return out
}

// PlanGenerated is published after a daily plan has been built.
type PlanGenerated struct {
	EventID       uuid.UUID    `json:"event_id"`
	AggregateType string       `json:"aggregate_type"`
	RoutingKey    string       `json:"routing_key"`
	OccurredAt    time.Time    `json:"occurred_at"`
	CorrelationID string       `json:"correlation_id,omitempty"`
	Plan          PlanSnapshot `json:"payload"`
}

// NewPlanGenerated creates a PlanGenerated event for snapshot.
func NewPlanGenerated(snapshot PlanSnapshot, correlationID string) PlanGenerated {
	return PlanGenerated{
		EventID:       uuid.New(),
		AggregateType: AggregateType,
		RoutingKey:    RoutingKeyPlanGenerated,
		OccurredAt:    snapshot.GeneratedAt.UTC(),
		CorrelationID: correlationID,
		Plan:          snapshot,
	}
}
