package domain

import (
	"github.com/google/uuid"
)

type UserType string

const (
	UserVoter     UserType = "voter"
	UserCandidate UserType = "candidate"
	UserAdmin     UserType = "admin"
)

func ParseUserType(s string) (UserType, bool) {
	switch UserType(s) {
	case UserVoter, UserCandidate, UserAdmin:
		return UserType(s), true
	default:
		return "", false
	}
}

// User is a registered account: a voter, a candidate standing in elections,
// or an administrator. The argon2id hash embeds the per-user salt.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Postcode     string    `json:"postcode"`
	Country      string    `json:"country"`
	PasswordHash string    `json:"-"`
	UserType     UserType  `json:"user_type"`

	// Elections the user may vote in (candidates: elections they stand in).
	ParticipatingElections []uuid.UUID `json:"participating_elections"`
}

// ParticipatesIn reports whether the user is already part of the election.
func (u *User) ParticipatesIn(electionID uuid.UUID) bool {
	for _, id := range u.ParticipatingElections {
		if id == electionID {
			return true
		}
	}
	return false
}

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	UserType UserType  `json:"user_type"`
}

func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}
}
