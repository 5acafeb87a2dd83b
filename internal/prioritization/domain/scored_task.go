package domain

// Factor names used in ScoredTask.Factors and explanations.
const (
	FactorUrgency    = "urgency"
	FactorImportance = "importance"
	FactorEffort     = "effort"
	FactorEnergy     = "energy"
	FactorCategory   = "category"
	FactorAging      = "aging"
	FactorKeywords   = "keywords"
)

// ScoredTask is the result of scoring one task. It is created fresh for every
// ranking pass and compared by pointer identity when building a plan.
type ScoredTask struct {
	Task               Task               `json:"task"`
	Score              float64            `json:"score"`
	Reasons            []string           `json:"reasons"`
	TimeRecommendation string             `json:"time_recommendation"`
	Factors            map[string]float64 `json:"factors,omitempty"`
}

// PrependReason puts reason in front of the existing reasons.
func (s *ScoredTask) PrependReason(reason string) {
	s.Reasons = append([]string{reason}, s.Reasons...)
}

// TopReasons returns at most n reasons.
func (s *ScoredTask) TopReasons(n int) []string {
	if n >= len(s.Reasons) {
		return s.Reasons
	}
	return s.Reasons[:n]
}
