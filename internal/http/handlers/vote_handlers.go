package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/http/middleware"
	"github.com/hs2213/proelection/internal/http/response"
	"github.com/hs2213/proelection/pkg/logger"
)

// CastVote admits a remote ballot for the authenticated voter.
func (h *Handlers) CastVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing session")
		return
	}

	var req domain.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "User lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if user == nil {
		response.Unauthorized(w, "unknown user")
		return
	}

	if err := h.admitVote(w, r, user, req.ElectionID, req.CandidateID); err != nil {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HasVoted reports whether the authenticated user has already cast a
// ballot in the election.
func (h *Handlers) HasVoted(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing session")
		return
	}

	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	voted, err := h.elections.CheckIfUserVoted(r.Context(), id, claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "Vote check failed", "error", err)
		response.Internal(w)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"voted": voted})
}

// admitVote applies the caller-side eligibility rules and hands the
// ballot to the workflow engine. It writes the error response itself and
// reports whether one was written.
func (h *Handlers) admitVote(w http.ResponseWriter, r *http.Request, user *domain.User, electionID, candidateID uuid.UUID) error {
	// Candidates and admins do not get a ballot.
	if user.UserType != domain.UserVoter {
		response.Forbidden(w, "only voters may vote")
		return domain.ErrNotEligible
	}

	if !user.ParticipatesIn(electionID) {
		response.Forbidden(w, "not registered for this election")
		return domain.ErrNotEligible
	}

	election, err := h.elections.GetElectionByID(r.Context(), electionID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Election lookup failed", "error", err)
		response.Internal(w)
		return err
	}
	if election == nil {
		response.NotFound(w, "election not found")
		return domain.ErrNotEligible
	}
	if election.Ended(time.Now()) {
		response.Conflict(w, "election has ended")
		return domain.ErrVotingClosed
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		ElectionID:  electionID,
		UserID:      user.ID,
		CandidateID: candidateID,
	}

	if err := h.elections.Vote(r.Context(), vote); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) {
			response.Conflict(w, "already voted in this election")
			return err
		}
		logger.ErrorContext(r.Context(), "Vote admission failed", "error", err)
		response.FromError(w, err)
		return err
	}

	return nil
}
