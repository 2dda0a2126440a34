package auth

import (
	"errors"
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/store"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or fails verification.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrInvalidSignature indicates the token's MAC does not match its contents.
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrBadCredentials is the single login failure. Unknown email and wrong
	// password both produce it.
	ErrBadCredentials = errors.New("invalid email or password")

	// ErrPrincipalNotFound indicates a validly signed token whose identity no
	// longer exists. Callers treat it as unauthenticated.
	ErrPrincipalNotFound = fmt.Errorf("principal no longer exists: %w", store.ErrUserNotFound)

	// ErrForbidden indicates the principal's role does not grant the capability.
	ErrForbidden = errors.New("operation not permitted for this role")

	// ErrNoPrincipal indicates a context that carries no resolved principal.
	ErrNoPrincipal = errors.New("no authenticated principal in context")
)
