package domain

import "math"

// Bucket limits that keep a day's plan small enough to act on.
const (
	MaxMorningFocus = 1
	MaxQuickWins    = 3
	MaxAfternoon    = 2
)

// DailyPlan groups scored tasks into three exclusive buckets.
type DailyPlan struct {
	MorningFocus []*ScoredTask `json:"morning_focus"`
	QuickWins    []*ScoredTask `json:"quick_wins"`
	Afternoon    []*ScoredTask `json:"afternoon"`
	TotalMinutes int           `json:"total_minutes"`
}

// NewDailyPlan returns an empty plan.
func NewDailyPlan() *DailyPlan {
	return &DailyPlan{
		MorningFocus: []*ScoredTask{},
		QuickWins:    []*ScoredTask{},
		Afternoon:    []*ScoredTask{},
	}
}

// Contains reports whether st has been placed in any bucket.
func (p *DailyPlan) Contains(st *ScoredTask) bool {
	for _, placed := range p.Placed() {
		if placed == st {
			return true
		}
	}
	return false
}

// Placed returns every placed task in bucket order.
func (p *DailyPlan) Placed() []*ScoredTask {
	out := make([]*ScoredTask, 0, len(p.MorningFocus)+len(p.QuickWins)+len(p.Afternoon))
	out = append(out, p.MorningFocus...)
	out = append(out, p.QuickWins...)
	out = append(out, p.Afternoon...)
	return out
}

// TotalHours returns the planned time in hours, rounded to one decimal.
func (p *DailyPlan) TotalHours() float64 {
	return math.Round(float64(p.TotalMinutes)/60*10) / 10
}

// IsEmpty reports whether nothing was placed.
func (p *DailyPlan) IsEmpty() bool {
	return len(p.MorningFocus) == 0 && len(p.QuickWins) == 0 && len(p.Afternoon) == 0
}
