// Package access centralizes the ownership/role predicate applied before
// every read and mutation. Ownership is defined by assignedTo, not
// createdBy: a Sales user who created a lead but is no longer assigned to
// it is out of scope.
package access

import (
	"github.com/spec-kit/field-crm/internal/domain"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// CanAccess reports whether the actor may view or mutate a work item of the
// given kind with the given assignee. The same predicate guards reads and
// writes; the distinction the system cares about is scope, not verb.
func CanAccess(actor *domain.User, kind domain.WorkItemKind, assignedTo *string) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleSales:
		if !kind.LeadKind() {
			return false
		}
		return assignedTo != nil && *assignedTo == actor.ID
	case domain.RoleService:
		if kind != domain.KindServiceRequest {
			return false
		}
		return assignedTo != nil && *assignedTo == actor.ID
	}
	return false
}

// Check returns ForbiddenError when the actor is out of scope. It is only
// called once the record is known to exist, so Forbidden stays
// distinguishable from NotFound.
func Check(actor *domain.User, kind domain.WorkItemKind, assignedTo *string) error {
	if CanAccess(actor, kind, assignedTo) {
		return nil
	}
	return apperrors.NewForbidden("access denied")
}

// ScopeOwner returns the assignee filter to apply to list queries: nil for
// an unrestricted actor, the actor's own id otherwise. Lists built with
// this filter never contain rows CanAccess would reject.
func ScopeOwner(actor *domain.User) *string {
	if actor == nil {
		return nil
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	id := actor.ID
	return &id
}

// RequireAdmin gates admin-only operations (assign, delete, staff
// management).
func RequireAdmin(actor *domain.User) error {
	if actor != nil && actor.Role == domain.RoleAdmin {
		return nil
	}
	return apperrors.NewForbidden("admin role required")
}
