// Package access encodes the fixed visibility and mutability rules applied
// across all registries. Every function here is pure: verdicts derive only
// from the acting account and the resource, never from stored state.
package access

import (
	"fmt"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// RequireAdmin rejects any actor that is not an admin.
func RequireAdmin(actor *models.Account) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: admin role required", apperrors.ErrUnauthorized)
	}
	return nil
}

// RequireAdminOfGroup rejects any actor that is not an admin of the given
// group. Admins never act cross-group.
func RequireAdminOfGroup(actor *models.Account, group string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if actor.Group != group {
		return fmt.Errorf("%w: wrong group", apperrors.ErrUnauthorized)
	}
	return nil
}

// RequireSuperadmin rejects any actor that is not the superadmin.
func RequireSuperadmin(actor *models.Account) error {
	if actor.Role != models.RoleSuperadmin {
		return fmt.Errorf("%w: superadmin role required", apperrors.ErrUnauthorized)
	}
	return nil
}

// CanTransition decides whether actor may apply a membership transition to
// target. Only a same-group admin qualifies; the target's current status
// never blocks a transition.
func CanTransition(actor, target *models.Account) error {
	if target.Role != models.RoleStudent {
		return fmt.Errorf("%w: only student applications can be transitioned", apperrors.ErrUnauthorized)
	}
	return RequireAdminOfGroup(actor, target.Group)
}

// CanDeleteApplication decides whether actor may delete target's
// application. Deletion is limited to rejected applications of the actor's
// own group.
func CanDeleteApplication(actor, target *models.Account) error {
	if err := CanTransition(actor, target); err != nil {
		return err
	}
	if target.MembershipStatusOrDefault() != models.StatusRejected {
		return fmt.Errorf("%w: only rejected applications can be deleted", apperrors.ErrInvalidState)
	}
	return nil
}

// CanViewGroupData decides whether actor may read their group's events,
// officers and member counts. A student only qualifies once approved.
func CanViewGroupData(actor *models.Account) error {
	switch actor.Role {
	case models.RoleAdmin, models.RoleSuperadmin:
		return nil
	case models.RoleStudent:
		if !actor.IsApprovedStudent() {
			return fmt.Errorf("%w: membership not approved", apperrors.ErrUnauthorized)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown role", apperrors.ErrUnauthorized)
	}
}

// RequestScope describes which schedule requests an actor may see.
type RequestScope struct {
	// Group restricts results to one group; empty means system-wide.
	Group string
	// Statuses restricts results; empty means any status.
	Statuses []models.RequestStatus
}

// VisibleRequests computes the request scope for an actor: students see
// approved requests of their own group, admins see everything in their own
// group, the superadmin sees everything system-wide.
func VisibleRequests(actor *models.Account) (RequestScope, error) {
	switch actor.Role {
	case models.RoleStudent:
		if !actor.IsApprovedStudent() {
			return RequestScope{}, fmt.Errorf("%w: membership not approved", apperrors.ErrUnauthorized)
		}
		return RequestScope{Group: actor.Group, Statuses: []models.RequestStatus{models.RequestApproved}}, nil
	case models.RoleAdmin:
		return RequestScope{Group: actor.Group}, nil
	case models.RoleSuperadmin:
		return RequestScope{}, nil
	default:
		return RequestScope{}, fmt.Errorf("%w: unknown role", apperrors.ErrUnauthorized)
	}
}

// MemberScope describes which student accounts an actor may list.
type MemberScope struct {
	// Group restricts results to one group; empty means system-wide.
	Group string
	// Statuses restricts results; empty means any status.
	Statuses []models.MembershipStatus
	// GroupFilterAllowed permits a caller-supplied group filter on top of
	// the scope (superadmin only).
	GroupFilterAllowed bool
}

// VisibleMembers computes the member-listing scope for an actor: students
// see approved members of their own group, admins additionally see pending
// applicants, the superadmin sees every student.
func VisibleMembers(actor *models.Account) (MemberScope, error) {
	switch actor.Role {
	case models.RoleStudent:
		if !actor.IsApprovedStudent() {
			return MemberScope{}, fmt.Errorf("%w: membership not approved", apperrors.ErrUnauthorized)
		}
		return MemberScope{
			Group:    actor.Group,
			Statuses: []models.MembershipStatus{models.StatusApproved},
		}, nil
	case models.RoleAdmin:
		return MemberScope{
			Group:    actor.Group,
			Statuses: []models.MembershipStatus{models.StatusApproved, models.StatusPending},
		}, nil
	case models.RoleSuperadmin:
		return MemberScope{GroupFilterAllowed: true}, nil
	default:
		return MemberScope{}, fmt.Errorf("%w: unknown role", apperrors.ErrUnauthorized)
	}
}
