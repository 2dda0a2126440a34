package api

import (
	"context"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// Authenticator checks credentials and issues a token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*auth.AuthResult, error)
}

// Registrar creates identities through the public signup path.
type Registrar interface {
	Signup(ctx context.Context, in service.SignupInput) (*domain.User, error)
}

// AuthHandler serves the public signup and login endpoints.
type AuthHandler struct {
	users         Registrar
	authenticator Authenticator
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users Registrar, authenticator Authenticator) *AuthHandler {
	return &AuthHandler{users: users, authenticator: authenticator}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.users.Signup(r.Context(), req.input())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same 401 body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	result, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		JWT:      result.Token.Value,
		UserID:   result.User.ID,
		UserRole: result.User.Role,
	})
}
