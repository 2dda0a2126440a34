package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/redact"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// AuthResult is a successful login: the issued token and the identity it names.
type AuthResult struct {
	Token *Token
	User  *domain.User
}

// Authenticator verifies submitted credentials and issues tokens.
type Authenticator struct {
	users     store.UserStore
	passwords PasswordVerifier
	tokens    JWTService
	logger    *slog.Logger

	// dummyHash is compared against when the email is unknown. It is hashed
	// by the same hasher as stored passwords, so both failure paths cost the same.
	dummyHash string
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(
	users store.UserStore,
	passwords PasswordHashVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*Authenticator, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if passwords == nil {
		return nil, domain.NewValidationError("passwords", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	dummyHash, err := passwords.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}
	return &Authenticator{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger.With(slog.String("component", "authenticator")),
		dummyHash: dummyHash,
	}, nil
}

// Authenticate checks email and password and, on success, issues a token
// whose subject is the user's email.
//
// An unknown email and a wrong password both return ErrBadCredentials.
// They are told apart only in the debug log.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)
	email = strings.TrimSpace(email)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to look up user during login", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = a.passwords.Compare(a.dummyHash, password)
		log.Debug("login failed",
			slog.String("reason", "unknown_email"),
			slog.String("email", redact.Email(email)))
		return nil, ErrBadCredentials
	}

	if err := a.passwords.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed",
			slog.String("reason", "password_mismatch"),
			slog.String("user_id", user.ID.String()))
		return nil, ErrBadCredentials
	}

	token, err := a.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return &AuthResult{Token: token, User: user}, nil
}
