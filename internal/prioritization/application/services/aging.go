package services

import (
	"math"
	"time"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

// AgingScore penalizes neglect so old tasks resurface instead of being
// postponed forever.
func AgingScore(created domain.Timestamp, now time.Time) (float64, string) {
	createdAt, ok := created.Parse(now.Location())
	if !ok {
		return 0, ""
	}

	age := int(math.Floor(now.Sub(createdAt).Hours() / 24))

	var score float64
	switch {
	case age >= 60:
		score = 50
	case age >= 30:
		score = 35
	case age >= 14:
		score = 20
	case age >= 7:
		score = 10
	}

	if score > 20 {
		return score, "⏰ Task aging - don't forget!"
	}
	return score, ""
}
