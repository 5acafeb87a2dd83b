package services

import "fmt"

// ImportanceScore normalizes declared importance (1-5) to 20-100.
func ImportanceScore(importance int) (float64, string) {
	score := float64(importance) * 20
	if importance >= 4 {
		return score, fmt.Sprintf("⭐ High importance (%d/5)", importance)
	}
	return score, ""
}

// EffortScore favours short tasks, weighted-shortest-job-first style. Long
// tasks that are also important get a hint about how to approach them.
func EffortScore(minutes, importance int) (float64, string) {
	important := importance >= 4

	switch {
	case minutes <= 15:
		return 100, "⚡ Quick win (15 min)"
	case minutes <= 30:
		return 90, ""
	case minutes <= 60:
		return 70, ""
	case minutes <= 120:
		if important {
			return 50, "🐸 Big task - eat the frog"
		}
		return 50, ""
	default:
		if important {
			return 30, "🐘 Major project - break it down"
		}
		return 30, ""
	}
}
