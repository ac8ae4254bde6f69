package models

import (
	"fmt"

	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleAdmin      RoleType = "admin"
	RoleSuperadmin RoleType = "superadmin"
)

// ParseRoleType converts an untrusted role string into a RoleType.
func ParseRoleType(s string) (RoleType, error) {
	switch RoleType(s) {
	case RoleStudent, RoleAdmin, RoleSuperadmin:
		return RoleType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, s)
	}
}

// MembershipStatus is the approval lifecycle of a student account.
// Admin and superadmin accounts are implicitly always active.
type MembershipStatus string

const (
	StatusPending  MembershipStatus = "pending"
	StatusApproved MembershipStatus = "approved"
	StatusRejected MembershipStatus = "rejected"
)

// ParseMembershipStatus converts a wire string to a MembershipStatus.
func ParseMembershipStatus(s string) (MembershipStatus, error) {
	switch MembershipStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return MembershipStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown membership status %q", apperrors.ErrValidationFailed, s)
	}
}

// TransitionAction is an admin decision over a membership application.
// Each action is valid from any source status: approve and reject may be
// re-applied, and reconsider walks any status back to pending.
type TransitionAction string

const (
	ActionApprove    TransitionAction = "approve"
	ActionReject     TransitionAction = "reject"
	ActionReconsider TransitionAction = "reconsider"
)

// ParseTransitionAction converts an untrusted action string.
func ParseTransitionAction(s string) (TransitionAction, error) {
	switch TransitionAction(s) {
	case ActionApprove, ActionReject, ActionReconsider:
		return TransitionAction(s), nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", apperrors.ErrValidationFailed, s)
	}
}

// Status returns the membership status an action transitions to.
func (a TransitionAction) Status() MembershipStatus {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	default:
		return StatusPending
	}
}

// RequestKind distinguishes events from meetings. Meetings require a time
// and room for slot conflict checking; events only occupy a date.
type RequestKind string

const (
	KindEvent   RequestKind = "event"
	KindMeeting RequestKind = "meeting"
)

// ParseRequestKind converts an untrusted kind string.
func ParseRequestKind(s string) (RequestKind, error) {
	switch RequestKind(s) {
	case KindEvent, KindMeeting:
		return RequestKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown request kind %q", apperrors.ErrValidationFailed, s)
	}
}

// RequestStatus is the approval lifecycle of a schedule request. Unlike
// membership there is no reconsider path: pending goes to approved or
// rejected and stays there.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus converts an untrusted status string.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestApproved, RequestRejected:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("%w: unknown request status %q", apperrors.ErrValidationFailed, s)
	}
}
