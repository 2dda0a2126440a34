package auth

import (
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// Capability names an operation the authorization gate decides on.
type Capability string

// Capabilities. Admin-only, employee-only and shared sets are disjoint.
const (
	CapCreateTask      Capability = "task:create"
	CapUpdateTask      Capability = "task:update"
	CapDeleteTask      Capability = "task:delete"
	CapListAllTasks    Capability = "task:list_all"
	CapSearchTasks     Capability = "task:search"
	CapViewAnyTask     Capability = "task:view_any"
	CapListEmployees   Capability = "user:list_employees"
	CapViewAnyComments Capability = "comment:view_any"

	CapListOwnTasks        Capability = "task:list_own"
	CapUpdateOwnTaskStatus Capability = "task:update_own_status"
	CapViewOwnComments     Capability = "comment:view_own"

	CapCreateComment Capability = "comment:create"
	CapViewTask      Capability = "task:view"
)

var grants = map[domain.Role]map[Capability]bool{
	domain.RoleAdmin: {
		CapCreateTask:      true,
		CapUpdateTask:      true,
		CapDeleteTask:      true,
		CapListAllTasks:    true,
		CapSearchTasks:     true,
		CapViewAnyTask:     true,
		CapListEmployees:   true,
		CapViewAnyComments: true,
		CapCreateComment:   true,
		CapViewTask:        true,
	},
	domain.RoleEmployee: {
		CapListOwnTasks:        true,
		CapUpdateOwnTaskStatus: true,
		CapViewOwnComments:     true,
		CapCreateComment:       true,
		CapViewTask:            true,
	},
}

// Authorize reports whether principal's role grants want. It looks only at
// the role; row ownership is enforced by the queries that follow.
func Authorize(principal *domain.User, want Capability) bool {
	if principal == nil {
		return false
	}
	return grants[principal.Role][want]
}

// Require returns ErrNoPrincipal for a nil principal and ErrForbidden when
// the role does not grant want.
func Require(principal *domain.User, want Capability) error {
	if principal == nil {
		return ErrNoPrincipal
	}
	if !Authorize(principal, want) {
		return fmt.Errorf("%w: %s may not %s", ErrForbidden, principal.Role, want)
	}
	return nil
}
