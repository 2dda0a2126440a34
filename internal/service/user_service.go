package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/redact"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// SignupInput carries a signup request. Role is "ADMIN", "EMPLOYEE" or
// empty for EMPLOYEE.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService provides identity operations.
type UserService interface {
	// Signup registers a new identity through the public endpoint.
	// Returns store.ErrEmailExists when the email is taken.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)

	// CreateUser registers an identity with any role, bypassing the public
	// signup policy. Used by operator tooling.
	CreateUser(ctx context.Context, in SignupInput) (*domain.User, error)

	// ListEmployees returns every EMPLOYEE identity. Admin only.
	ListEmployees(ctx context.Context, principal *domain.User) ([]*domain.User, error)

	// ListUsers returns every identity holding role, for operator tooling.
	ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users            store.UserStore
	hasher           auth.PasswordHasher
	allowAdminSignup bool
	logger           *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	allowAdminSignup bool,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:            users,
		hasher:           hasher,
		allowAdminSignup: allowAdminSignup,
		logger:           logger.With(slog.String("component", "user_service")),
	}, nil
}

// Signup implements UserService.
func (s *UserServiceImpl) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleAdmin && !s.allowAdminSignup {
		return nil, ErrAdminSignupDisabled
	}
	return s.create(ctx, in, role)
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, in SignupInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in, role)
}

func (s *UserServiceImpl) create(ctx context.Context, in SignupInput, role domain.Role) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	user.HashedPassword, err = s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup with an existing email")
		} else {
			log.Error("failed to save user", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// ListEmployees implements UserService.
func (s *UserServiceImpl) ListEmployees(ctx context.Context, principal *domain.User) ([]*domain.User, error) {
	if err := auth.Require(principal, auth.CapListEmployees); err != nil {
		return nil, err
	}
	return s.ListUsers(ctx, domain.RoleEmployee)
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
