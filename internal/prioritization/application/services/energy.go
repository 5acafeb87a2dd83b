package services

import (
	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

// Time recommendations. Exactly one is assigned to every scored task.
const (
	RecommendPeak     = "Best: 9-11 AM (peak focus time)"
	RecommendTrough   = "Best: 2-4 PM (trough - quick wins)"
	RecommendEvening  = "Best: 6-9 PM (evening personal time)"
	RecommendRecovery = "Best: 4-6 PM (recovery - creative work)"
	RecommendMorning  = "Best: 9 AM - 1 PM (morning energy)"
)

// EnergyScore rates how well a task fits the given hour of the day. The first
// band containing hour decides; if none does, fallback is returned.
func EnergyScore(bands []domain.EnergyBand, fallback float64, hour int, category domain.Category, minutes int) float64 {
	for _, band := range bands {
		if band.Contains(hour) {
			return band.Score(category, minutes)
		}
	}
	return fallback
}

// EnergyBandName returns the name of the band containing hour, or "".
func EnergyBandName(bands []domain.EnergyBand, hour int) string {
	for _, band := range bands {
		if band.Contains(hour) {
			return band.Name
		}
	}
	return ""
}

// TimeRecommendation suggests when to do a task. It depends only on the task,
// not on the current time.
func TimeRecommendation(category domain.Category, minutes int) string {
	switch {
	case category.In(domain.CategoryWork, domain.CategoryLearning, domain.CategoryFinance) && minutes >= 60:
		return RecommendPeak
	case minutes <= 15:
		return RecommendTrough
	case category.In(domain.CategoryPersonal, domain.CategoryHealth):
		return RecommendEvening
	case category.In(domain.CategoryCreative):
		return RecommendRecovery
	default:
		return RecommendMorning
	}
}
