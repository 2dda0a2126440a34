package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := &domain.User{Role: domain.RoleAdmin}
	employee := &domain.User{Role: domain.RoleEmployee}
	unknown := &domain.User{Role: domain.Role("MANAGER")}

	tests := []struct {
		capability auth.Capability
		admin      bool
		employee   bool
	}{
		{auth.CapCreateTask, true, false},
		{auth.CapUpdateTask, true, false},
		{auth.CapDeleteTask, true, false},
		{auth.CapListAllTasks, true, false},
		{auth.CapSearchTasks, true, false},
		{auth.CapViewAnyTask, true, false},
		{auth.CapListEmployees, true, false},
		{auth.CapViewAnyComments, true, false},
		{auth.CapListOwnTasks, false, true},
		{auth.CapUpdateOwnTaskStatus, false, true},
		{auth.CapViewOwnComments, false, true},
		{auth.CapCreateComment, true, true},
		{auth.CapViewTask, true, true},
		{auth.Capability("task:launch_rockets"), false, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.capability), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.admin, auth.Authorize(admin, tc.capability))
			assert.Equal(t, tc.employee, auth.Authorize(employee, tc.capability))
			assert.False(t, auth.Authorize(unknown, tc.capability))
			assert.False(t, auth.Authorize(nil, tc.capability))
		})
	}
}

func TestRequire(t *testing.T) {
	t.Parallel()

	assert.NoError(t, auth.Require(&domain.User{Role: domain.RoleAdmin}, auth.CapDeleteTask))
	assert.ErrorIs(t, auth.Require(&domain.User{Role: domain.RoleEmployee}, auth.CapDeleteTask), auth.ErrForbidden)
	assert.ErrorIs(t, auth.Require(nil, auth.CapDeleteTask), auth.ErrNoPrincipal)
}
