package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// handlePrincipal returns the principal placed in the context by the
// authentication middleware. It writes a 401 and returns false when absent.
func handlePrincipal(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	principal, err := auth.MustPrincipal(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("principal missing from request context")
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return principal, true
}

// handlePrincipalAndPathUUID combines handlePrincipal and getPathUUID,
// writing the error response if either fails.
func handlePrincipalAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (*domain.User, uuid.UUID, bool) {
	principal, ok := handlePrincipal(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}

	id, err := getPathUUID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return nil, uuid.Nil, false
	}
	return principal, id, true
}
