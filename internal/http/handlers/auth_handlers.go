package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/internal/http/response"
	"github.com/hs2213/proelection/pkg/logger"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Conflict(w, "email already exists")
			return
		}
		logger.ErrorContext(r.Context(), "Registration failed", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user.ToUserInfo())
}

// CreateUser creates an account of any user type. Only reachable through
// the admin-gated route; public sign-up goes through Register, which
// always produces a voter.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	user, err := h.users.CreateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.Conflict(w, "email already exists")
			return
		}
		logger.ErrorContext(r.Context(), "User creation failed", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user.ToUserInfo())
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	res, err := h.users.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(w, "invalid credentials")
			return
		}
		logger.ErrorContext(r.Context(), "Login failed", "error", err)
		response.Internal(w)
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}
