package services

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

// AnalyzeKeywords scans text for signal words. Each group contributes its
// boost at most once: scanning a group stops at its first matching keyword.
// Matching is by substring, so "now" also matches "know".
func AnalyzeKeywords(groups []domain.KeywordGroup, text string) (float64, []string) {
	lower := strings.ToLower(text)

	var boost float64
	reasons := []string{}
	for _, group := range groups {
		for _, keyword := range group.Keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			boost += group.Boost
			if group.ReasonFormat != "" {
				reasons = append(reasons, fmt.Sprintf(group.ReasonFormat, keyword))
			}
			break
		}
	}
	return boost, reasons
}
