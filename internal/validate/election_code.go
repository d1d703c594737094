package validate

import (
	"github.com/hs2213/proelection/internal/domain"
)

// ElectionCode checks every rule for a one-time access code.
func ElectionCode(code *domain.ElectionCode) []Violation {
	violations := userElectionAssociation(code.ID, code.ElectionID, code.UserID)

	if _, ok := domain.ParseCodeStatus(string(code.Status)); !ok {
		violations = append(violations, Violation{Field: "status", Message: "Status is not valid"})
	}

	return violations
}
