package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestElectionEnded(t *testing.T) {
	now := time.Now()
	e := Election{Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)}
	if !e.Ended(now) {
		t.Error("an election past its end date has ended")
	}

	e.End = now.Add(time.Hour)
	if e.Ended(now) {
		t.Error("an election before its end date has not ended")
	}

	// An election ending exactly now has not ended yet.
	e.End = now
	if e.Ended(now) {
		t.Error("the end instant itself is still inside the window")
	}
}

func TestParseUserType(t *testing.T) {
	tests := []struct {
		in   string
		want UserType
		ok   bool
	}{
		{"voter", UserVoter, true},
		{"candidate", UserCandidate, true},
		{"admin", UserAdmin, true},
		{"", "", false},
		{"superuser", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseUserType(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseUserType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParticipatesIn(t *testing.T) {
	electionID := uuid.New()
	user := User{ParticipatingElections: []uuid.UUID{uuid.New(), electionID}}

	if !user.ParticipatesIn(electionID) {
		t.Error("expected participation")
	}
	if user.ParticipatesIn(uuid.New()) {
		t.Error("unexpected participation")
	}
}
