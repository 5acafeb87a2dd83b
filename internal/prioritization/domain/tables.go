package domain

import "maps"

// Weights controls how factor values combine into the composite score.
type Weights struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Energy     float64 `json:"energy"`
	Category   float64 `json:"category"`
	Aging      float64 `json:"aging"`
}

// KeywordGroup is a set of signal words that contributes Boost at most once.
// ReasonFormat receives the matched keyword; an empty format emits no reason.
type KeywordGroup struct {
	Name         string
	Keywords     []string
	Boost        float64
	ReasonFormat string
}

// EnergyRule matches when every set condition holds. Zero values mean "any".
type EnergyRule struct {
	Categories []Category
	MinMinutes int
	MaxMinutes int
	Score      float64
}

// Matches reports whether the rule applies to the category and estimate.
func (r EnergyRule) Matches(category Category, minutes int) bool {
	if len(r.Categories) > 0 && !category.In(r.Categories...) {
		return false
	}
	if r.MinMinutes > 0 && minutes < r.MinMinutes {
		return false
	}
	if r.MaxMinutes > 0 && minutes > r.MaxMinutes {
		return false
	}
	return true
}

// EnergyBand is an inclusive hour-of-day range with its own rules. A band
// whose From is greater than To wraps past midnight.
type EnergyBand struct {
	Name     string
	From     int
	To       int
	Rules    []EnergyRule
	Fallback float64
}

// Contains reports whether hour falls inside the band.
func (b EnergyBand) Contains(hour int) bool {
	if b.From <= b.To {
		return hour >= b.From && hour <= b.To
	}
	return hour >= b.From || hour <= b.To
}

// Score returns the first matching rule's score or the band fallback.
func (b EnergyBand) Score(category Category, minutes int) float64 {
	for _, rule := range b.Rules {
		if rule.Matches(category, minutes) {
			return rule.Score
		}
	}
	return b.Fallback
}

// Tables holds every lookup the scoring engine reads. Values are copied into
// the engine on construction and never mutated afterwards.
type Tables struct {
	Weights             Weights
	CategoryMultipliers map[Category]float64
	PriorityMultipliers map[PriorityLevel]float64
	KeywordGroups       []KeywordGroup
	EnergyBands         []EnergyBand
	EnergyDefault       float64

	// Scores above SoftCap keep only SoftCapFactor of the excess; the
	// result is then limited to HardCap.
	SoftCap       float64
	SoftCapFactor float64
	HardCap       float64
}

// DefaultTables returns the production scoring tables.
func DefaultTables() Tables {
	return Tables{
		Weights: Weights{
			Urgency:    0.30,
			Importance: 0.25,
			Effort:     0.15,
			Energy:     0.10,
			Category:   0.10,
			Aging:      0.05,
		},
		CategoryMultipliers: map[Category]float64{
			CategoryHealth:   2.0,
			CategoryFinance:  1.8,
			CategoryWork:     1.5,
			CategoryLearning: 1.3,
			CategoryPersonal: 1.0,
			CategoryGeneral:  1.0,
		},
		PriorityMultipliers: map[PriorityLevel]float64{
			PriorityUrgent: 1.3,
			PriorityHigh:   1.15,
			PriorityMedium: 1.0,
			PriorityLow:    0.85,
		},
		KeywordGroups: []KeywordGroup{
			{
				Name:         "urgent",
				Keywords:     []string{"urgent", "asap", "critical", "emergency", "now", "immediately", "crisis"},
				Boost:        25,
				ReasonFormat: "🚨 Contains '%s'",
			},
			{
				Name:         "important",
				Keywords:     []string{"important", "crucial", "essential", "vital", "key", "priority", "must"},
				Boost:        15,
				ReasonFormat: "❗ Contains '%s'",
			},
			{
				Name:     "time_sensitive",
				Keywords: []string{"today", "tonight", "deadline", "meeting", "call", "appointment", "presentation"},
				Boost:    10,
			},
			{
				Name:         "optional",
				Keywords:     []string{"maybe", "someday", "eventually", "consider", "think about"},
				Boost:        -15,
				ReasonFormat: "💭 Seems optional ('%s')",
			},
		},
		EnergyBands:   defaultEnergyBands(),
		EnergyDefault: 50,
		SoftCap:       100,
		SoftCapFactor: 0.3,
		HardCap:       120,
	}
}

// defaultEnergyBands models peak, trough and recovery periods of the day.
// Bands are checked in order, so an hour shared by two bands (11, 16, 18,
// 21) belongs to the earlier one.
func defaultEnergyBands() []EnergyBand {
	return []EnergyBand{
		{
			Name: "peak", From: 9, To: 11,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryWork, CategoryLearning, CategoryFinance}, Score: 100},
				{MinMinutes: 60, Score: 90},
			},
			Fallback: 70,
		},
		{
			Name: "late_morning", From: 11, To: 13,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryWork, CategoryLearning}, Score: 85},
			},
			Fallback: 70,
		},
		{
			Name: "trough", From: 14, To: 16,
			Rules: []EnergyRule{
				{MaxMinutes: 15, Score: 100},
				{MaxMinutes: 30, Score: 60},
			},
			Fallback: 30,
		},
		{
			Name: "recovery", From: 16, To: 18,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryPersonal, CategoryCreative}, Score: 90},
				{MaxMinutes: 60, Score: 75},
			},
			Fallback: 50,
		},
		{
			Name: "evening", From: 18, To: 21,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryPersonal, CategoryHealth}, Score: 85},
				{MaxMinutes: 30, Score: 70},
			},
			Fallback: 40,
		},
		{
			Name: "night", From: 21, To: 6,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryPersonal}, MaxMinutes: 15, Score: 60},
			},
			Fallback: 20,
		},
		{
			Name: "early_morning", From: 7, To: 8,
			Rules: []EnergyRule{
				{Categories: []Category{CategoryHealth, CategoryPersonal}, Score: 80},
				{MaxMinutes: 30, Score: 70},
			},
			Fallback: 50,
		},
	}
}

// Clone returns a deep copy so callers cannot mutate tables held elsewhere.
func (t Tables) Clone() Tables {
	out := t
	out.CategoryMultipliers = maps.Clone(t.CategoryMultipliers)
	out.PriorityMultipliers = maps.Clone(t.PriorityMultipliers)

	out.KeywordGroups = make([]KeywordGroup, len(t.KeywordGroups))
	for i, g := range t.KeywordGroups {
		g.Keywords = append([]string(nil), g.Keywords...)
		out.KeywordGroups[i] = g
	}

	out.EnergyBands = make([]EnergyBand, len(t.EnergyBands))
	for i, b := range t.EnergyBands {
		rules := make([]EnergyRule, len(b.Rules))
		for j, r := range b.Rules {
			r.Categories = append([]Category(nil), r.Categories...)
			rules[j] = r
		}
		b.Rules = rules
		out.EnergyBands[i] = b
	}
	return out
}

// CategoryMultiplier returns the multiplier for c, 1.0 when unknown.
func (t Tables) CategoryMultiplier(c Category) float64 {
	if m, ok := t.CategoryMultipliers[c.Normalized()]; ok {
		return m
	}
	return 1.0
}

// PriorityMultiplier returns the multiplier for p, 1.0 when unknown.
func (t Tables) PriorityMultiplier(p PriorityLevel) float64 {
	if m, ok := t.PriorityMultipliers[p.Effective()]; ok {
		return m
	}
	return 1.0
}
