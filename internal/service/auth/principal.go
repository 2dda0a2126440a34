package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// PrincipalResolver turns a bearer token into the identity it names.
type PrincipalResolver struct {
	tokens JWTService
	users  store.UserStore
	logger *slog.Logger
}

// NewPrincipalResolver creates a PrincipalResolver.
func NewPrincipalResolver(tokens JWTService, users store.UserStore, logger *slog.Logger) *PrincipalResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrincipalResolver{
		tokens: tokens,
		users:  users,
		logger: logger.With(slog.String("component", "principal_resolver")),
	}
}

// Resolve verifies token and re-fetches its subject from the user store, so
// the returned role is always current. A token whose user has been deleted
// yields ErrPrincipalNotFound.
func (r *PrincipalResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	claims, err := r.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("token subject no longer exists", slog.String("token_id", claims.ID))
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}

	return user, nil
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the resolved principal.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, principalKey{}, user)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(principalKey{}).(*domain.User)
	return user, ok && user != nil
}

// MustPrincipal returns the principal stored in ctx or ErrNoPrincipal.
func MustPrincipal(ctx context.Context) (*domain.User, error) {
	user, ok := PrincipalFromContext(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}
	return user, nil
}
