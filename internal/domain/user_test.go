package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("Ada", "ada@example.com", "password123", RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, RoleAdmin, user.Role)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
		wantErr  error
	}{
		{"empty name", "", "a@example.com", "password123", RoleEmployee, ErrEmptyUserName},
		{"empty email", "A", "", "password123", RoleEmployee, ErrEmptyEmail},
		{"bad email", "A", "not-an-email", "password123", RoleEmployee, ErrInvalidEmail},
		{"short password", "A", "a@example.com", "short", RoleEmployee, ErrPasswordTooShort},
		{"long password", "A", "a@example.com", strings.Repeat("x", 73), RoleEmployee, ErrPasswordTooLong},
		{"unknown role", "A", "a@example.com", "password123", Role("OWNER"), ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	stored := User{
		ID:             uuid.New(),
		Name:           "Bo",
		Email:          "bo@example.com",
		HashedPassword: "$2a$10$hash",
		Role:           RoleEmployee,
	}
	assert.NoError(t, stored.Validate())

	stored.HashedPassword = ""
	assert.ErrorIs(t, stored.Validate(), ErrEmptyPassword)
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, r)

	r, err = ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
