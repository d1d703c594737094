package validate

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
)

func hasViolation(violations []Violation, field, message string) bool {
	for _, v := range violations {
		if v.Field == field && v.Message == message {
			return true
		}
	}
	return false
}

func TestElectionReturnsAllViolations(t *testing.T) {
	now := time.Now()

	// Empty name and inverted dates must be reported together.
	violations := Election(&domain.Election{
		ID:           uuid.New(),
		Name:         "",
		Start:        now.Add(time.Hour),
		End:          now,
		ElectionType: domain.FirstPastThePost,
	})

	if len(violations) < 2 {
		t.Fatalf("got %d violations, want at least 2: %v", len(violations), violations)
	}
	if !hasViolation(violations, "name", "Please provide a Name") {
		t.Errorf("missing name violation: %v", violations)
	}
	if !hasViolation(violations, "start", "Start Date must be before End Date") {
		t.Errorf("missing start violation: %v", violations)
	}
	if !hasViolation(violations, "end", "End Date must be after Start Date") {
		t.Errorf("missing end violation: %v", violations)
	}
}

func TestElectionValid(t *testing.T) {
	now := time.Now()
	violations := Election(&domain.Election{
		ID:           uuid.New(),
		Name:         "Local Council",
		Start:        now,
		End:          now.Add(24 * time.Hour),
		ElectionType: domain.FirstPastThePost,
	})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestElectionEqualStartAndEnd(t *testing.T) {
	now := time.Now()
	violations := Election(&domain.Election{
		ID:    uuid.New(),
		Name:  "Zero Window",
		Start: now,
		End:   now,
	})
	if !hasViolation(violations, "start", "Start Date must be before End Date") {
		t.Fatalf("an election must span a non-empty window: %v", violations)
	}
}

func TestVote(t *testing.T) {
	now := time.Now()
	base := domain.Vote{
		ID:          uuid.New(),
		ElectionID:  uuid.New(),
		UserID:      uuid.New(),
		CandidateID: uuid.New(),
		Time:        now,
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Vote)
		field   string
		message string
	}{
		{"valid", func(*domain.Vote) {}, "", ""},
		{"missing candidate", func(v *domain.Vote) { v.CandidateID = uuid.Nil }, "candidate_id", "Id is required"},
		{"missing election", func(v *domain.Vote) { v.ElectionID = uuid.Nil }, "election_id", "Id is required"},
		{"missing user", func(v *domain.Vote) { v.UserID = uuid.Nil }, "user_id", "Id is required"},
		{"zero time", func(v *domain.Vote) { v.Time = time.Time{} }, "time", "Time of Vote is required"},
		{"backdated", func(v *domain.Vote) { v.Time = now.Add(-time.Second) }, "time", "Vote Cannot be cast in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vote := base
			tt.mutate(&vote)
			violations := Vote(&vote, now)
			if tt.field == "" {
				if len(violations) != 0 {
					t.Fatalf("unexpected violations: %v", violations)
				}
				return
			}
			if !hasViolation(violations, tt.field, tt.message) {
				t.Fatalf("missing %s violation, got %v", tt.field, violations)
			}
		})
	}
}

func TestVoteStampedAtNowIsValid(t *testing.T) {
	now := time.Now()
	violations := Vote(&domain.Vote{
		ID:          uuid.New(),
		ElectionID:  uuid.New(),
		UserID:      uuid.New(),
		CandidateID: uuid.New(),
		Time:        now,
	}, now)
	if len(violations) != 0 {
		t.Fatalf("a vote stamped at the evaluation instant must pass: %v", violations)
	}
}

func TestElectionCode(t *testing.T) {
	code := domain.ElectionCode{
		ID:         uuid.New(),
		ElectionID: uuid.New(),
		UserID:     uuid.New(),
		Status:     domain.CodeNew,
	}
	if violations := ElectionCode(&code); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	code.Status = "redeemed"
	if violations := ElectionCode(&code); !hasViolation(violations, "status", "Status is not valid") {
		t.Fatalf("missing status violation: %v", violations)
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"valid", "Abcde1", ""},
		{"empty", "", "Password is required"},
		{"too short", "Ab1", "Password must be at least 6 characters long"},
		{"too long", "Abcdefghijklmnopqrs12", "Password must be at most 20 characters long"},
		{"no uppercase", "abcdef1", "Password must contain at least one uppercase letter."},
		{"no lowercase", "ABCDEF1", "Password must contain at least one lowercase letter."},
		{"no digit", "Abcdefg", "Password must contain at least one number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := Password(tt.password)
			if tt.message == "" {
				if len(violations) != 0 {
					t.Fatalf("unexpected violations: %v", violations)
				}
				return
			}
			if !hasViolation(violations, "password", tt.message) {
				t.Fatalf("missing violation %q, got %v", tt.message, violations)
			}
		})
	}
}

func TestRegistration(t *testing.T) {
	valid := domain.RegisterRequest{
		Name:        "Jo Bloggs",
		PhoneNumber: "+441234567890",
		Email:       "jo@example.com",
		Address:     "1 High Street",
		Postcode:    "AB1 2CD",
		Country:     "United Kingdom",
		Password:    "Sup3rSecret",
	}
	if violations := Registration(&valid); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}

	tests := []struct {
		name    string
		mutate  func(*domain.RegisterRequest)
		field   string
		message string
	}{
		{"blank name", func(r *domain.RegisterRequest) { r.Name = "   " }, "name", "Please provide a Name"},
		{"missing phone", func(r *domain.RegisterRequest) { r.PhoneNumber = "" }, "phone_number", "Please provide a Phone Number"},
		{"phone with letters", func(r *domain.RegisterRequest) { r.PhoneNumber = "0800-CALL-NOW" }, "phone_number", "Phone number is invalid"},
		{"phone too short", func(r *domain.RegisterRequest) { r.PhoneNumber = "+12" }, "phone_number", "Phone number is invalid"},
		{"bad email", func(r *domain.RegisterRequest) { r.Email = "not-an-email" }, "email", "Email is invalid"},
		{"missing address", func(r *domain.RegisterRequest) { r.Address = "" }, "address", "Please provide an Address"},
		{"postcode too long", func(r *domain.RegisterRequest) { r.Postcode = "ABCDE123456" }, "postcode", "Postcode is Invalid"},
		{"missing country", func(r *domain.RegisterRequest) { r.Country = "" }, "country", "Please provide a Country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			violations := Registration(&req)
			if !hasViolation(violations, tt.field, tt.message) {
				t.Fatalf("missing %s violation, got %v", tt.field, violations)
			}
		})
	}
}

func TestUserRequiresID(t *testing.T) {
	user := domain.User{
		Name:        "Jo Bloggs",
		PhoneNumber: "+441234567890",
		Email:       "jo@example.com",
		Address:     "1 High Street",
		Postcode:    "AB1 2CD",
		Country:     "United Kingdom",
	}
	if violations := User(&user); !hasViolation(violations, "id", "Id is required") {
		t.Fatalf("missing id violation: %v", violations)
	}

	user.ID = uuid.New()
	if violations := User(&user); len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}
