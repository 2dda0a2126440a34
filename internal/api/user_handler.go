package api

import (
	"context"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// EmployeeLister lists employee identities on behalf of a principal.
type EmployeeLister interface {
	ListEmployees(ctx context.Context, principal *domain.User) ([]*domain.User, error)
}

// UserHandler serves the admin user directory.
type UserHandler struct {
	users EmployeeLister
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users EmployeeLister) *UserHandler {
	return &UserHandler{users: users}
}

// ListEmployees handles GET /api/admin/users.
func (h *UserHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return
	}

	users, err := h.users.ListEmployees(r.Context(), principal)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}
