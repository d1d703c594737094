package validate

import (
	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
)

// Election checks every rule for an election definition and returns all
// violations found.
func Election(election *domain.Election) []Violation {
	var violations []Violation

	if election.ID == uuid.Nil {
		violations = append(violations, Violation{Field: "id", Message: "Id is required"})
	}

	if blank(election.Name) {
		violations = append(violations, Violation{Field: "name", Message: "Please provide a Name"})
	}

	if election.Start.IsZero() {
		violations = append(violations, Violation{Field: "start", Message: "Please provide a Start Date"})
	} else if !election.End.IsZero() && !election.Start.Before(election.End) {
		violations = append(violations, Violation{Field: "start", Message: "Start Date must be before End Date"})
	}

	if election.End.IsZero() {
		violations = append(violations, Violation{Field: "end", Message: "Please provide an End Date"})
	} else if !election.Start.IsZero() && !election.End.After(election.Start) {
		violations = append(violations, Violation{Field: "end", Message: "End Date must be after Start Date"})
	}

	return violations
}
