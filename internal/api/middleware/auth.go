package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/redact"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// PrincipalResolver turns a bearer token into the identity it names.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware resolves the caller of every protected route.
type AuthMiddleware struct {
	resolver PrincipalResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate reads a Bearer token from the Authorization header, resolves
// it to a principal and stores the principal in the request context.
// Requests without a valid token, or whose identity no longer exists, get 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authorization header required", auth.ErrMissingToken)
			return
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" || strings.ContainsAny(token, " \t") {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid authorization format", auth.ErrInvalidToken)
			return
		}

		principal, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
			case errors.Is(err, auth.ErrPrincipalNotFound):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authentication required", err)
			default:
				logger.FromContext(r.Context()).Error("failed to resolve principal",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := auth.WithPrincipal(r.Context(), principal)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(
			slog.String("user_id", principal.ID.String()),
			slog.String("role", string(principal.Role))))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCapability rejects requests whose principal's role does not grant
// want with 403. It must run after Authenticate.
func RequireCapability(want auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authentication required", auth.ErrNoPrincipal)
				return
			}
			if err := auth.Require(principal, want); err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Forbidden", err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
