package validate

import (
	"time"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
)

// Vote checks every rule for a ballot. The timestamp floor is evaluated
// against now, so a ballot stamped before validation is rejected.
func Vote(vote *domain.Vote, now time.Time) []Violation {
	violations := userElectionAssociation(vote.ID, vote.ElectionID, vote.UserID)

	if vote.CandidateID == uuid.Nil {
		violations = append(violations, Violation{Field: "candidate_id", Message: "Id is required"})
	}

	if vote.Time.IsZero() {
		violations = append(violations, Violation{Field: "time", Message: "Time of Vote is required"})
	} else if vote.Time.Before(now) {
		violations = append(violations, Violation{Field: "time", Message: "Vote Cannot be cast in the past"})
	}

	return violations
}

// userElectionAssociation covers the fields shared by votes and election
// codes: the entity's own id plus the (election, user) pair it binds.
func userElectionAssociation(id, electionID, userID uuid.UUID) []Violation {
	var violations []Violation

	if id == uuid.Nil {
		violations = append(violations, Violation{Field: "id", Message: "Id is required"})
	}
	if electionID == uuid.Nil {
		violations = append(violations, Violation{Field: "election_id", Message: "Id is required"})
	}
	if userID == uuid.Nil {
		violations = append(violations, Violation{Field: "user_id", Message: "Id is required"})
	}

	return violations
}
