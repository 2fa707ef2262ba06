package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority ranks a todo item.
type Priority int

const (
	// PriorityLow is the lowest priority.
	PriorityLow Priority = iota
	// PriorityMedium is the default priority.
	PriorityMedium
	// PriorityHigh is the highest priority.
	PriorityHigh
)

// DefaultPriority is assigned when a caller does not choose one.
const DefaultPriority = PriorityMedium

// Priorities lists every priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// String returns the canonical name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority matches s case-insensitively against the known priorities.
// It reports false for anything else, including the empty string.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, true
		}
	}

	return DefaultPriority, false
}

// MarshalJSON encodes the priority by name.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a priority name.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("priority: %w", err)
	}

	parsed, ok := ParsePriority(s)
	if !ok {
		return fmt.Errorf("priority: unknown value %q", s)
	}

	*p = parsed

	return nil
}
