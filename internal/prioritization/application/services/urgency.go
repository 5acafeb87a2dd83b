package services

import (
	"math"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

const (
	urgencyNoDueDate      = 20
	urgencyOverdueBase    = 100
	urgencyOverduePerDay  = 5
	urgencyOverdueCeiling = 150
)

// Urgency reasons, chosen by the urgency value rather than the tier that
// produced it: due within hours and due later today both read as critical.
const (
	ReasonCritical     = "⚠️ OVERDUE - Critical!"
	ReasonDueToday     = "📅 Due today"
	ReasonDueVerySoon  = "📅 Due very soon"
	urgencyCriticalMin = 95
	urgencyDueTodayMin = 85
	urgencyVerySoonMin = 70
)

// UrgencyScore maps the distance between now and the due date to a value in
// [0, 150]. Overdue tasks exceed the normal 0-100 range on purpose.
func UrgencyScore(due domain.Timestamp, now time.Time) (float64, string) {
	score := urgencyValue(due, now)
	return score, urgencyReason(score)
}

func urgencyValue(due domain.Timestamp, now time.Time) float64 {
	dueAt, ok := due.Parse(now.Location())
	if !ok {
		return urgencyNoDueDate
	}

	until := dueAt.Sub(now)
	days := int(math.Floor(until.Hours() / 24))

	switch {
	case days < 0:
		overdue := float64(-days)
		return math.Min(urgencyOverdueBase+overdue*urgencyOverduePerDay, urgencyOverdueCeiling)
	case until.Hours() <= 4:
		return 100
	case days == 0:
		return 95
	case days == 1:
		return 85
	case days <= 3:
		return 70
	case days <= 7:
		return 50
	case days <= 14:
		return 35
	case days <= 30:
		return 25
	default:
		return 15
	}
}

func urgencyReason(score float64) string {
	switch {
	case score >= urgencyCriticalMin:
		return ReasonCritical
	case score >= urgencyDueTodayMin:
		return ReasonDueToday
	case score >= urgencyVerySoonMin:
		return ReasonDueVerySoon
	default:
		return ""
	}
}
