package services

import (
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

const (
	// DefaultMaxTasks bounds the ranked list returned alongside a plan.
	DefaultMaxTasks = 5

	twoMinuteLimit    = 2
	twoMinuteMaxTasks = 2
	twoMinuteReason   = "⚡ 2-MIN RULE: Do now!"

	frogMinMinutes     = 60
	frogMinScore       = 70
	quickWinMinMinutes = 10
	quickWinMaxMinutes = 30
	afternoonMinutes   = 30
)

// PlanBuilder turns a task list into a small daily plan: one demanding task
// for the morning, a few quick wins and a couple of afternoon tasks.
type PlanBuilder struct {
	engine *PriorityEngine
}

// NewPlanBuilder creates a plan builder scoring with engine.
func NewPlanBuilder(engine *PriorityEngine) *PlanBuilder {
	if engine == nil {
		engine = NewDefaultPriorityEngine()
	}
	return &PlanBuilder{engine: engine}
}

// Build ranks tasks as of now and fills the plan buckets. It also returns the
// top maxTasks of the ranking; maxTasks <= 0 means DefaultMaxTasks. The plan
// and the ranking share ScoredTask pointers.
func (b *PlanBuilder) Build(tasks []domain.Task, maxTasks int, now time.Time) (*domain.DailyPlan, []*domain.ScoredTask) {
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}

	ranked := b.engine.Rank(tasks, now)
	applyTwoMinuteRule(ranked)

	plan := domain.NewDailyPlan()

	for _, st := range ranked {
		if st.Task.Minutes() >= frogMinMinutes && st.Score >= frogMinScore {
			plan.MorningFocus = append(plan.MorningFocus, st)
			break
		}
	}

	for _, st := range ranked {
		if len(plan.QuickWins) == domain.MaxQuickWins {
			break
		}
		minutes := st.Task.Minutes()
		if minutes >= quickWinMinMinutes && minutes <= quickWinMaxMinutes && !plan.Contains(st) {
			plan.QuickWins = append(plan.QuickWins, st)
		}
	}

	for _, st := range ranked {
		if len(plan.Afternoon) == domain.MaxAfternoon {
			break
		}
		if st.Task.Minutes() > afternoonMinutes && !plan.Contains(st) {
			plan.Afternoon = append(plan.Afternoon, st)
		}
	}

	for _, st := range plan.Placed() {
		plan.TotalMinutes += st.Task.Minutes()
	}

	if len(ranked) > maxTasks {
		ranked = ranked[:maxTasks]
	}
	return plan, ranked
}

// applyTwoMinuteRule flags the first few trivially short tasks for immediate
// action. Scores are left untouched.
func applyTwoMinuteRule(ranked []*domain.ScoredTask) {
	tagged := 0
	for _, st := range ranked {
		if tagged == twoMinuteMaxTasks {
			return
		}
		if st.Task.Minutes() <= twoMinuteLimit {
			st.PrependReason(twoMinuteReason)
			tagged++
		}
	}
}
