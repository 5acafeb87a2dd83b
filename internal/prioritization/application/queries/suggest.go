package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/application/services"
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
	"github.com/google/uuid"
)

const (
	// NoPendingTasksSuggestion is returned when there is nothing to rank.
	NoPendingTasksSuggestion = "No pending tasks! Add some tasks to get started."

	// DefaultRankLimit bounds the ordered list of a suggestion.
	DefaultRankLimit = 15
	// DefaultSuggestMaxTasks is the plan size used for suggestions.
	DefaultSuggestMaxTasks = 10

	suggestionReasons = 2
)

// SuggestQuery asks what to work on next.
type SuggestQuery struct {
	UserID    uuid.UUID
	RankLimit int // 0 = DefaultRankLimit
	MaxTasks  int // 0 = DefaultSuggestMaxTasks
}

// PlanSummary is the compact plan embedded in a suggestion.
type PlanSummary struct {
	TotalMinutes int                  `json:"total_time_minutes"`
	TotalHours   float64              `json:"total_time_hours"`
	MorningFocus []domain.PlannedTask `json:"morning_focus"`
	QuickWins    []domain.PlannedTask `json:"quick_wins"`
	Afternoon    []domain.PlannedTask `json:"afternoon_tasks"`
}

// SuggestResult is the answer to "what should I do now?".
type SuggestResult struct {
	Suggestion            string          `json:"suggestion"`
	OrderedTasks          []RankedTaskDTO `json:"ordered_tasks"`
	TotalPending          int             `json:"total_pending"`
	TotalMinutesNeeded    int             `json:"total_time_needed"`
	DailyPlan             *PlanSummary    `json:"daily_plan"`
	TopTimeRecommendation string          `json:"top_time_recommendation,omitempty"`
}

// SuggestHandler handles the SuggestQuery.
type SuggestHandler struct {
	tasks   domain.TaskReader
	engine  *services.PriorityEngine
	builder *services.PlanBuilder
	clock   Clock
	logger  *slog.Logger
	metrics observability.Metrics
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(
	tasks domain.TaskReader,
	engine *services.PriorityEngine,
	clock Clock,
	logger *slog.Logger,
	metrics observability.Metrics,
) *SuggestHandler {
	if engine == nil {
		engine = services.NewDefaultPriorityEngine()
	}
	return &SuggestHandler{
		tasks:   tasks,
		engine:  engine,
		builder: services.NewPlanBuilder(engine),
		clock:   defaultClock(clock),
		logger:  defaultLogger(logger),
		metrics: defaultMetrics(metrics),
	}
}

// Handle executes the SuggestQuery.
func (h *SuggestHandler) Handle(ctx context.Context, query SuggestQuery) (*SuggestResult, error) {
	pending, err := h.tasks.FindPending(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("load pending tasks: %w", err)
	}

	if len(pending) == 0 {
		return &SuggestResult{
			Suggestion:   NoPendingTasksSuggestion,
			OrderedTasks: []RankedTaskDTO{},
		}, nil
	}

	rankLimit := query.RankLimit
	if rankLimit <= 0 {
		rankLimit = DefaultRankLimit
	}
	maxTasks := query.MaxTasks
	if maxTasks <= 0 {
		maxTasks = DefaultSuggestMaxTasks
	}

	now := h.clock()
	plan, _ := h.builder.Build(pending, maxTasks, now)

	// The ordered list is a plain ranking: two-minute tags belong to the plan.
	ranked := h.engine.Rank(pending, now)
	h.metrics.Counter(observability.MetricTasksRanked, int64(len(ranked)))

	totalMinutes := 0
	for _, task := range pending {
		totalMinutes += task.Minutes()
	}

	snapshot := domain.NewPlanSnapshot(query.UserID, plan, now)
	top := ranked[0]

	h.logger.DebugContext(ctx, "suggestion built",
		"user_id", query.UserID,
		"top_task", top.Task.ID,
		"top_score", top.Score,
	)

	return &SuggestResult{
		Suggestion:         SuggestionText(top),
		OrderedTasks:       toRankedDTOs(ranked, rankLimit),
		TotalPending:       len(pending),
		TotalMinutesNeeded: totalMinutes,
		DailyPlan: &PlanSummary{
			TotalMinutes: plan.TotalMinutes,
			TotalHours:   plan.TotalHours(),
			MorningFocus: snapshot.MorningFocus,
			QuickWins:    snapshot.QuickWins,
			Afternoon:    snapshot.Afternoon,
		},
		TopTimeRecommendation: top.TimeRecommendation,
	}, nil
}

// SuggestionText renders the one-line recommendation for the top task.
func SuggestionText(top *domain.ScoredTask) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Start with: '%s'", top.Task.Text)
	if reasons := top.TopReasons(suggestionReasons); len(reasons) > 0 {
		b.WriteString(" — ")
		b.WriteString(strings.Join(reasons, ", "))
	}
	fmt.Fprintf(&b, " (%d min)", top.Task.Minutes())
	return b.String()
}
