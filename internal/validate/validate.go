// Package validate holds the field rule sets for every entity the
// platform persists. Each entity has a pure function returning the full
// set of violated rules; nothing short-circuits on the first failure, so
// callers can surface every problem at once.
package validate

import (
	"fmt"
	"strings"
)

// Violation is a single broken field rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete set of violations for an entity.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Check wraps a violation slice into an error, or returns nil when the
// entity passed every rule.
func Check(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
