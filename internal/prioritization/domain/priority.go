package domain

import (
	"errors"
	"strings"
)

// PriorityLevel is the user-declared priority of a task.
type PriorityLevel int

const (
	PriorityLow PriorityLevel = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var (
	ErrInvalidPriority = errors.New("invalid priority value")
)

var priorityNames = map[PriorityLevel]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
	PriorityUrgent: "urgent",
}

var priorityValues = map[string]PriorityLevel{
	"low":    PriorityLow,
	"medium": PriorityMedium,
	"high":   PriorityHigh,
	"urgent": PriorityUrgent,
}

// ParsePriority creates a PriorityLevel from a string.
func ParsePriority(s string) (PriorityLevel, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return PriorityMedium, ErrInvalidPriority
	}
	return p, nil
}

// ParsePriorityLevel is the lenient form of ParsePriority used for stored
// records: absent or unrecognized values fall back to medium.
func ParsePriorityLevel(s string) PriorityLevel {
	p, _ := ParsePriority(s)
	return p
}

// String returns the string representation of the priority.
func (p PriorityLevel) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return priorityNames[PriorityMedium]
}

// IsValid returns true if the priority is a known level.
func (p PriorityLevel) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Effective maps the zero value and unknown levels to medium.
func (p PriorityLevel) Effective() PriorityLevel {
	if !p.IsValid() {
		return PriorityMedium
	}
	return p
}

// MarshalText implements encoding.TextMarshaler.
func (p PriorityLevel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values decode
// to medium rather than failing the whole record.
func (p *PriorityLevel) UnmarshalText(text []byte) error {
	*p = ParsePriorityLevel(string(text))
	return nil
}
