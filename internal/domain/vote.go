package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one ballot in the append-only ledger. At most one vote exists
// per (UserID, ElectionID) pair; the votes table enforces this with a
// unique index so concurrent casts cannot double-count.
type Vote struct {
	ID          uuid.UUID `json:"id"`
	ElectionID  uuid.UUID `json:"election_id"`
	UserID      uuid.UUID `json:"user_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Time        time.Time `json:"time"`
}
