package services

import (
	"math"
	"sort"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

// PriorityEngine combines the individual factor scores into one bounded,
// explainable score. It holds only read-only tables and is safe for
// concurrent use.
type PriorityEngine struct {
	tables domain.Tables
}

// NewPriorityEngine creates an engine scoring with a private copy of tables.
func NewPriorityEngine(tables domain.Tables) *PriorityEngine {
	return &PriorityEngine{tables: tables.Clone()}
}

// NewDefaultPriorityEngine creates an engine with the production tables.
func NewDefaultPriorityEngine() *PriorityEngine {
	return &PriorityEngine{tables: domain.DefaultTables()}
}

// Tables returns a copy of the engine's tables.
func (e *PriorityEngine) Tables() domain.Tables {
	return e.tables.Clone()
}

// factors holds the raw factor values of one task and the reasons gathered
// while computing them.
type factors struct {
	urgency    float64
	importance float64
	effort     float64
	energy     float64
	category   float64
	aging      float64
	keywords   float64
	reasons    []string
}

func (e *PriorityEngine) evaluate(task domain.Task, now time.Time) factors {
	var f factors
	add := func(reason string) {
		if reason != "" {
			f.reasons = append(f.reasons, reason)
		}
	}

	minutes := task.Minutes()
	importance := task.EffectiveImportance()
	category := task.EffectiveCategory()

	var reason string
	f.urgency, reason = UrgencyScore(task.DueDate, now)
	add(reason)

	f.importance, reason = ImportanceScore(importance)
	add(reason)

	f.effort, reason = EffortScore(minutes, importance)
	add(reason)

	f.energy = EnergyScore(e.tables.EnergyBands, e.tables.EnergyDefault, now.Hour(), category, minutes)

	f.category, reason = CategoryScore(e.tables, category)
	add(reason)

	f.aging, reason = AgingScore(task.CreatedAt, now)
	add(reason)

	var keywordReasons []string
	f.keywords, keywordReasons = AnalyzeKeywords(e.tables.KeywordGroups, task.Text)
	f.reasons = append(f.reasons, keywordReasons...)

	return f
}

func (e *PriorityEngine) weighted(f factors) float64 {
	w := e.tables.Weights
	return f.urgency*w.Urgency +
		f.importance*w.Importance +
		f.effort*w.Effort +
		f.energy*w.Energy +
		f.category*w.Category +
		f.aging*w.Aging
}

// compose applies the keyword boost, the priority multiplier and the caps.
// There is deliberately no lower clamp: keyword penalties can push a score
// below zero.
func (e *PriorityEngine) compose(f factors, priority domain.PriorityLevel) float64 {
	score := e.weighted(f) + f.keywords
	score *= e.tables.PriorityMultiplier(priority)

	if score > e.tables.SoftCap {
		score = e.tables.SoftCap + (score-e.tables.SoftCap)*e.tables.SoftCapFactor
	}
	score = math.Min(score, e.tables.HardCap)

	return math.Round(score*100) / 100 // keep two decimal places
}

// Score computes the score, reasons and time recommendation for task as of
// now. It never fails: malformed or missing fields fall back to defaults.
func (e *PriorityEngine) Score(task domain.Task, now time.Time) *domain.ScoredTask {
	f := e.evaluate(task, now)

	reasons := f.reasons
	if reasons == nil {
		reasons = []string{}
	}

	return &domain.ScoredTask{
		Task:               task,
		Score:              e.compose(f, task.EffectivePriority()),
		Reasons:            reasons,
		TimeRecommendation: TimeRecommendation(task.EffectiveCategory(), task.Minutes()),
		Factors: map[string]float64{
			domain.FactorUrgency:    f.urgency,
			domain.FactorImportance: f.importance,
			domain.FactorEffort:     f.effort,
			domain.FactorEnergy:     f.energy,
			domain.FactorCategory:   f.category,
			domain.FactorAging:      f.aging,
			domain.FactorKeywords:   f.keywords,
		},
	}
}

// Rank scores every task against the same instant and orders them by
// descending score. Ties keep their input order.
func (e *PriorityEngine) Rank(tasks []domain.Task, now time.Time) []*domain.ScoredTask {
	scored := make([]*domain.ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		scored = append(scored, e.Score(task, now))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// FactorBreakdown shows how a single factor contributed to the score.
type FactorBreakdown struct {
	Name          string  `json:"name"`
	RawValue      float64 `json:"raw_value"`
	Weight        float64 `json:"weight"`
	WeightedValue float64 `json:"weighted_value"`
}

// Explanation is a detailed breakdown of one task's score.
type Explanation struct {
	TotalScore         float64           `json:"total_score"`
	WeightedSum        float64           `json:"weighted_sum"`
	KeywordBoost       float64           `json:"keyword_boost"`
	PriorityMultiplier float64           `json:"priority_multiplier"`
	EnergyBand         string            `json:"energy_band"`
	Factors            []FactorBreakdown `json:"factors"`
	Reasons            []string          `json:"reasons"`
	TimeRecommendation string            `json:"time_recommendation"`
}

// Explain returns the factor breakdown behind Score.
func (e *PriorityEngine) Explain(task domain.Task, now time.Time) *Explanation {
	f := e.evaluate(task, now)
	w := e.tables.Weights

	breakdown := func(name string, raw, weight float64) FactorBreakdown {
		return FactorBreakdown{
			Name:          name,
			RawValue:      raw,
			Weight:        weight,
			WeightedValue: math.Round(raw*weight*100) / 100,
		}
	}

	reasons := f.reasons
	if reasons == nil {
		reasons = []string{}
	}

	return &Explanation{
		TotalScore:         e.compose(f, task.EffectivePriority()),
		WeightedSum:        math.Round(e.weighted(f)*100) / 100,
		KeywordBoost:       f.keywords,
		PriorityMultiplier: e.tables.PriorityMultiplier(task.EffectivePriority()),
		EnergyBand:         EnergyBandName(e.tables.EnergyBands, now.Hour()),
		Factors: []FactorBreakdown{
			breakdown(domain.FactorUrgency, f.urgency, w.Urgency),
			breakdown(domain.FactorImportance, f.importance, w.Importance),
			breakdown(domain.FactorEffort, f.effort, w.Effort),
			breakdown(domain.FactorEnergy, f.energy, w.Energy),
			breakdown(domain.FactorCategory, f.category, w.Category),
			breakdown(domain.FactorAging, f.aging, w.Aging),
		},
		Reasons:            reasons,
		TimeRecommendation: TimeRecommendation(task.EffectiveCategory(), task.Minutes()),
	}
}
