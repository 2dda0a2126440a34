package auth

import (
	"context"
	"time"
)

// JWTService is the token codec: it issues and verifies signed identity
// tokens. Tokens carry only the subject and timestamps; the role is
// re-resolved from the user store on every request.
type JWTService interface {
	// GenerateToken issues a token for subject, valid from now for the
	// configured lifetime.
	GenerateToken(ctx context.Context, subject string) (*Token, error)

	// ValidateToken verifies the token's signature and expiry and returns its
	// claims. Returns ErrInvalidToken (or ErrInvalidSignature) for tokens that
	// fail verification and ErrExpiredToken once the expiry has passed.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is an issued, signed token and the claims it carries.
type Token struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims represents the verified contents of a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
