package services

import (
	"fmt"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

const highImpactMultiplier = 1.5

// CategoryScore converts the category multiplier to a 0-100 value.
func CategoryScore(tables domain.Tables, category domain.Category) (float64, string) {
	multiplier := tables.CategoryMultiplier(category)
	score := multiplier * 50
	if multiplier >= highImpactMultiplier {
		return score, fmt.Sprintf("💎 High-impact category (%s)", category.Normalized())
	}
	return score, ""
}
