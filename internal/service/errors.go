package service

import (
	"errors"
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/store"
)

// Service errors. Store, auth and domain sentinels pass through wrapped.
var (
	// ErrAssigneeNotFound indicates a task create or update named a user that
	// does not exist. API layer should map this to HTTP 404 Not Found.
	ErrAssigneeNotFound = fmt.Errorf("assignee %w", store.ErrUserNotFound)

	// ErrAdminSignupDisabled indicates a public signup requested the ADMIN
	// role while admin signup is turned off.
	ErrAdminSignupDisabled = errors.New("admin signup is disabled")
)
