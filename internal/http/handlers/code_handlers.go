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

// RequestElectionCode issues (or re-issues) the authenticated voter's
// one-time in-person code for the election. Asking twice returns the same
// code.
func (h *Handlers) RequestElectionCode(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing session")
		return
	}

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

	code, err := h.elections.GetElectionCodeForUser(r.Context(), id, claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "Code issuance failed", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, code)
}

// GetElectionCode resolves a code presented at a polling station. A used
// code comes back with its status so the station can tell the voter; an
// expired or unknown code is a 404.
func (h *Handlers) GetElectionCode(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	code, err := h.elections.GetElectionCodeByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Code lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if code == nil {
		response.NotFound(w, "code invalid, or election has ended or does not exist")
		return
	}

	response.WriteJSON(w, http.StatusOK, code)
}

// VoteWithCode casts an in-person ballot against a one-time code. The
// code resolves the voter's identity; on success the code is marked used.
func (h *Handlers) VoteWithCode(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		CandidateID uuid.UUID `json:"candidate_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	code, err := h.elections.GetElectionCodeByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Code lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if code == nil {
		response.NotFound(w, "code invalid, or election has ended or does not exist")
		return
	}
	if code.Status == domain.CodeUsed {
		response.Conflict(w, "code has already been used")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), code.UserID)
	if err != nil {
		logger.ErrorContext(r.Context(), "User lookup failed", "error", err)
		response.Internal(w)
		return
	}
	if user == nil {
		response.NotFound(w, "voter not found")
		return
	}

	if err := h.admitVote(w, r, user, code.ElectionID, req.CandidateID); err != nil {
		return
	}

	if err := h.elections.MarkElectionCodeUsed(r.Context(), code); err != nil {
		// The ballot is already in the ledger; the code state catches up
		// on the next redemption attempt via the duplicate-vote guard.
		logger.ErrorContext(r.Context(), "Failed to mark code used", "error", err, "code_id", code.ID)
	}

	w.WriteHeader(http.StatusNoContent)
}
