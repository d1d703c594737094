package domain

import (
	"time"

	"github.com/google/uuid"
)

type ElectionType string

const (
	// FirstPastThePost is a plurality election: most votes wins.
	FirstPastThePost ElectionType = "first_past_the_post"
)

func ParseElectionType(s string) (ElectionType, bool) {
	switch ElectionType(s) {
	case FirstPastThePost:
		return ElectionType(s), true
	default:
		return "", false
	}
}

type Election struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	ElectionType ElectionType `json:"election_type"`
}

// Ended reports whether the election's voting window has closed.
func (e *Election) Ended(now time.Time) bool {
	return e.End.Before(now)
}

// CandidateResult is one row of a tally: a candidate and the number of
// votes they received. Results are ordered, so a slice is used rather
// than a map.
type CandidateResult struct {
	Candidate UserInfo `json:"candidate"`
	Votes     int      `json:"votes"`
}
