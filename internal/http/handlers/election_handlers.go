package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/http/middleware"
	"github.com/hs2213/proelection/internal/http/response"
	"github.com/hs2213/proelection/pkg/logger"
)

func (h *Handlers) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	electionType, ok := domain.ParseElectionType(req.ElectionType)
	if !ok {
		electionType = domain.FirstPastThePost
	}

	election := &domain.Election{
		ID:           uuid.New(),
		Name:         req.Name,
		Start:        req.Start,
		End:          req.End,
		ElectionType: electionType,
	}

	created, err := h.elections.CreateElection(r.Context(), election)
	if err != nil {
		logger.ErrorContext(r.Context(), "Election creation failed", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	election, err := h.elections.GetElectionByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Election lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if election == nil {
		response.NotFound(w, "election not found")
		return
	}

	var req domain.UpdateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	if req.Name != nil {
		election.Name = *req.Name
	}
	if req.Start != nil {
		election.Start = *req.Start
	}
	if req.End != nil {
		election.End = *req.End
	}

	if err := h.elections.UpdateElection(r.Context(), election); err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, election)
}

func (h *Handlers) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.elections.GetAllElections(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Listing elections failed", "error", err)
		response.Internal(w)
		return
	}

	response.WriteJSON(w, http.StatusOK, elections)
}

func (h *Handlers) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	election, err := h.elections.GetElectionByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Election lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if election == nil {
		response.NotFound(w, "election not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, election)
}

func (h *Handlers) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	results, err := h.elections.CalculateResults(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Result calculation failed", "error", err)
		response.Internal(w)
		return
	}
	if results == nil {
		response.NotFound(w, "election not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, domain.ResultsResponse{
		ElectionID: id,
		Results:    results,
	})
}

func (h *Handlers) GetElectionCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	candidates, err := h.users.GetCandidatesForElection(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Candidate lookup failed", "error", err)
		response.Internal(w)
		return
	}

	infos := make([]domain.UserInfo, 0, len(candidates))
	for i := range candidates {
		infos = append(infos, candidates[i].ToUserInfo())
	}

	response.WriteJSON(w, http.StatusOK, infos)
}

// AddUserToElection registers an existing user as a participant of the
// election; used by admins for both voters and candidates.
func (h *Handlers) AddUserToElection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req domain.AddUserToElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	election, err := h.elections.GetElectionByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Election lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if election == nil {
		response.NotFound(w, "election not found")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), req.UserID)
	if err != nil {
		logger.ErrorContext(r.Context(), "User lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}

	if err := h.users.AddElectionToUser(r.Context(), user, election); err != nil {
		logger.ErrorContext(r.Context(), "Adding user to election failed", "error", err)
		response.Internal(w)
		return
	}

	response.WriteJSON(w, http.StatusOK, user.ToUserInfo())
}

// SearchUsersForElection finds users by email fragment who are not yet
// part of the election, filtered by type.
func (h *Handlers) SearchUsersForElection(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	userType, ok := domain.ParseUserType(r.URL.Query().Get("type"))
	if !ok {
		response.BadRequest(w, "type must be voter, candidate or admin")
		return
	}

	users, err := h.users.SearchUsersForElection(r.Context(), r.URL.Query().Get("q"), userType, id)
	if err != nil {
		logger.ErrorContext(r.Context(), "User search failed", "error", err)
		response.Internal(w)
		return
	}

	infos := make([]domain.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].ToUserInfo())
	}

	response.WriteJSON(w, http.StatusOK, infos)
}

// MyElections lists the elections the authenticated user takes part in.
func (h *Handlers) MyElections(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing session")
		return
	}

	elections, err := h.users.GetUserElections(r.Context(), claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "Listing user elections failed", "error", err)
		response.Internal(w)
		return
	}
	if elections == nil {
		elections = []domain.Election{}
	}

	response.WriteJSON(w, http.StatusOK, elections)
}
