package domain

import (
	"github.com/google/uuid"
)

type CodeStatus string

const (
	CodeNew  CodeStatus = "new"
	CodeUsed CodeStatus = "used"
)

func ParseCodeStatus(s string) (CodeStatus, bool) {
	switch CodeStatus(s) {
	case CodeNew, CodeUsed:
		return CodeStatus(s), true
	default:
		return "", false
	}
}

// ElectionCode is a one-time token letting a specific user vote in person
// in a specific election. The ID doubles as the redeemable code value.
// Status only ever moves new -> used.
type ElectionCode struct {
	ID         uuid.UUID  `json:"id"`
	ElectionID uuid.UUID  `json:"election_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Status     CodeStatus `json:"status"`
}
