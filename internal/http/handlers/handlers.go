// Package handlers is the HTTP edge of the platform: it decodes requests,
// applies the caller-side eligibility rules, and hands off to the
// services. All business invariants live below this layer.
package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/go-chi/chi/v5"

	"github.com/hs2213/proelection/internal/http/response"
	"github.com/hs2213/proelection/internal/service"
)

type Handlers struct {
	users     service.UserService
	elections service.ElectionService
}

func New(users service.UserService, elections service.ElectionService) *Handlers {
	return &Handlers{users: users, elections: elections}
}

// urlUUID extracts a uuid path parameter, writing a 400 on failure.
func urlUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
