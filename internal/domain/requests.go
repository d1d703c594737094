package domain

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	Password    string `json:"password"`
	UserType    string `json:"user_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}

type CreateElectionRequest struct {
	Name         string    `json:"name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	ElectionType string    `json:"election_type"`
}

type UpdateElectionRequest struct {
	Name  *string    `json:"name,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type CastVoteRequest struct {
	ElectionID  uuid.UUID `json:"election_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
}

type AddUserToElectionRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type ResultsResponse struct {
	ElectionID uuid.UUID         `json:"election_id"`
	Results    []CandidateResult `json:"results"`
}
