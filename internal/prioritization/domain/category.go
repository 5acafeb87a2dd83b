package domain

import "strings"

// Category is a free-form task tag. Only the known categories below carry
// specific scoring behaviour; anything else behaves like CategoryGeneral.
type Category string

const (
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"
	CategoryGeneral  Category = "general"
	CategoryCreative Category = "creative"
)

// NewCategory normalizes a raw tag. Empty tags become general.
func NewCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryGeneral
	}
	return c
}

// Normalized returns the category in canonical form.
func (c Category) Normalized() Category {
	return NewCategory(string(c))
}

// In reports whether the category is one of the given set.
func (c Category) In(set ...Category) bool {
	n := c.Normalized()
	for _, s := range set {
		if n == s {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c.Normalized())
}
