package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.PriorityLevel
		wantErr  bool
	}{
		{"low", "low", domain.PriorityLow, false},
		{"medium", "medium", domain.PriorityMedium, false},
		{"high", "high", domain.PriorityHigh, false},
		{"urgent", "urgent", domain.PriorityUrgent, false},
		{"case insensitive", "HIGH", domain.PriorityHigh, false},
		{"padded", "  urgent ", domain.PriorityUrgent, false},
		{"invalid", "whenever", domain.PriorityMedium, true},
		{"empty", "", domain.PriorityMedium, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := domain.ParsePriority(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPriorityLevel_Effective(t *testing.T) {
	var zero domain.PriorityLevel
	assert.Equal(t, domain.PriorityMedium, zero.Effective())
	assert.Equal(t, "medium", zero.String())
	assert.Equal(t, domain.PriorityHigh, domain.PriorityHigh.Effective())
}

func TestPriorityLevel_JSON(t *testing.T) {
	var task domain.Task
	require.NoError(t, json.Unmarshal([]byte(`{"text":"x","priority":"bogus"}`), &task))
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	require.NoError(t, json.Unmarshal([]byte(`{"text":"x","priority":"Urgent"}`), &task))
	assert.Equal(t, domain.PriorityUrgent, task.Priority)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, domain.CategoryWork, domain.NewCategory(" Work "))
	assert.Equal(t, domain.CategoryGeneral, domain.NewCategory(""))
	assert.True(t, domain.Category("HEALTH").In(domain.CategoryHealth, domain.CategoryPersonal))
	assert.False(t, domain.Category("gardening").In(domain.CategoryHealth))
}

func TestTimestamp_Parse(t *testing.T) {
	loc := time.FixedZone("test", 2*3600)

	t.Run("empty is not ok", func(t *testing.T) {
		_, ok := domain.Timestamp("").Parse(loc)
		assert.False(t, ok)
		assert.True(t, domain.Timestamp("  ").IsZero())
	})

	t.Run("garbage is not ok", func(t *testing.T) {
		_, ok := domain.Timestamp("next tuesday").Parse(loc)
		assert.False(t, ok)
	})

	t.Run("rfc3339 keeps its zone", func(t *testing.T) {
		parsed, ok := domain.Timestamp("2025-03-01T10:00:00Z").Parse(loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), parsed.UTC())
	})

	t.Run("naive values use the location", func(t *testing.T) {
		for _, raw := range []string{"2025-03-01T10:00", "2025-03-01T10:00:00", "2025-03-01 10:00:00", "2025-03-01T10:00:00.123456"} {
			parsed, ok := domain.Timestamp(raw).Parse(loc)
			require.True(t, ok, raw)
			assert.Equal(t, loc, parsed.Location(), raw)
			assert.Equal(t, 10, parsed.Hour(), raw)
		}
	})

	t.Run("date only", func(t *testing.T) {
		parsed, ok := domain.Timestamp("2025-03-01").Parse(loc)
		require.True(t, ok)
		assert.Equal(t, 0, parsed.Hour())
	})
}

func TestTask_Defaults(t *testing.T) {
	var task domain.Task
	assert.Equal(t, 30, task.Minutes())
	assert.Equal(t, 3, task.EffectiveImportance())
	assert.Equal(t, domain.PriorityMedium, task.EffectivePriority())
	assert.Equal(t, domain.CategoryGeneral, task.EffectiveCategory())

	task.Importance = 9
	assert.Equal(t, 5, task.EffectiveImportance())
	task.Importance = -2
	assert.Equal(t, 1, task.EffectiveImportance())
}

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	task, err := domain.NewTask(userID, "  write report  ")
	require.NoError(t, err)
	assert.Equal(t, "write report", task.Text)
	assert.Equal(t, userID, task.UserID)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, 30, task.EstimatedMinutes)
	assert.Equal(t, 3, task.Importance)

	_, err = domain.NewTask(userID, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestEnergyBand_Contains(t *testing.T) {
	night := domain.EnergyBand{From: 21, To: 6}
	assert.True(t, night.Contains(23))
	assert.True(t, night.Contains(0))
	assert.True(t, night.Contains(6))
	assert.False(t, night.Contains(7))

	peak := domain.EnergyBand{From: 9, To: 11}
	assert.True(t, peak.Contains(11))
	assert.False(t, peak.Contains(12))
}

func TestTables_Clone(t *testing.T) {
	original := domain.DefaultTables()
	clone := original.Clone()

	clone.CategoryMultipliers[domain.CategoryWork] = 9
	clone.KeywordGroups[0].Keywords[0] = "changed"
	clone.EnergyBands[0].Rules[0].Categories[0] = domain.CategoryCreative

	assert.Equal(t, 1.5, original.CategoryMultipliers[domain.CategoryWork])
	assert.Equal(t, "urgent", original.KeywordGroups[0].Keywords[0])
	assert.Equal(t, domain.CategoryWork, original.EnergyBands[0].Rules[0].Categories[0])
}

func TestTables_Multipliers(t *testing.T) {
	tables := domain.DefaultTables()
	assert.Equal(t, 2.0, tables.CategoryMultiplier(domain.CategoryHealth))
	assert.Equal(t, 1.0, tables.CategoryMultiplier(domain.CategoryCreative))
	assert.Equal(t, 1.0, tables.CategoryMultiplier("gardening"))
	assert.Equal(t, 1.3, tables.PriorityMultiplier(domain.PriorityUrgent))
	assert.Equal(t, 1.0, tables.PriorityMultiplier(0))
}

func TestDailyPlan(t *testing.T) {
	a := &domain.ScoredTask{Task: domain.Task{EstimatedMinutes: 90}}
	b := &domain.ScoredTask{Task: domain.Task{EstimatedMinutes: 15}}
	other := &domain.ScoredTask{}

	plan := domain.NewDailyPlan()
	assert.True(t, plan.IsEmpty())

	plan.MorningFocus = append(plan.MorningFocus, a)
	plan.QuickWins = append(plan.QuickWins, b)
	plan.TotalMinutes = 105

	assert.True(t, plan.Contains(a))
	assert.False(t, plan.Contains(other))
	assert.Equal(t, []*domain.ScoredTask{a, b}, plan.Placed())
	assert.Equal(t, 1.8, plan.TotalHours())
}

func TestNewPlanSnapshot(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	generatedAt := time.Date(2025, 5, 2, 8, 30, 0, 0, time.UTC)

	plan := domain.NewDailyPlan()
	plan.QuickWins = []*domain.ScoredTask{{
		Task:    domain.Task{ID: taskID, Text: "reply to email", EstimatedMinutes: 15},
		Score:   61.5,
		Reasons: []string{"⚡ Quick win (15 min)"},
	}}
	plan.TotalMinutes = 15

	snapshot := domain.NewPlanSnapshot(userID, plan, generatedAt)
	assert.Equal(t, "2025-05-02", snapshot.Date)
	require.Len(t, snapshot.QuickWins, 1)
	assert.Equal(t, taskID, snapshot.QuickWins[0].TaskID)
	assert.Empty(t, snapshot.MorningFocus)

	event := domain.NewPlanGenerated(snapshot, "corr-1")
	assert.Equal(t, domain.RoutingKeyPlanGenerated, event.RoutingKey)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.NotEqual(t, uuid.Nil, event.EventID)
}
