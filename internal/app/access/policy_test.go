package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

func student(group string, status models.MembershipStatus) *models.Account {
	s := status
	return &models.Account{Role: models.RoleStudent, Group: group, Status: &s}
}

func admin(group string) *models.Account {
	return &models.Account{Role: models.RoleAdmin, Group: group}
}

func superadmin() *models.Account {
	return &models.Account{Role: models.RoleSuperadmin}
}

func TestCanTransition(t *testing.T) {
	target := student("CodEx", models.StatusPending)

	assert.NoError(t, CanTransition(admin("CodEx"), target))
	assert.ErrorIs(t, CanTransition(admin("Netac"), target), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanTransition(superadmin(), target), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanTransition(student("CodEx", models.StatusApproved), target), apperrors.ErrUnauthorized)

	// Non-student targets are never transitionable.
	assert.ErrorIs(t, CanTransition(admin("CodEx"), admin("CodEx")), apperrors.ErrUnauthorized)
}

func TestCanTransition_IgnoresCurrentStatus(t *testing.T) {
	for _, status := range []models.MembershipStatus{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		assert.NoError(t, CanTransition(admin("CodEx"), student("CodEx", status)), "status %s", status)
	}
}

func TestCanDeleteApplication(t *testing.T) {
	assert.NoError(t, CanDeleteApplication(admin("CodEx"), student("CodEx", models.StatusRejected)))

	assert.ErrorIs(t,
		CanDeleteApplication(admin("CodEx"), student("CodEx", models.StatusPending)),
		apperrors.ErrInvalidState)
	assert.ErrorIs(t,
		CanDeleteApplication(admin("CodEx"), student("CodEx", models.StatusApproved)),
		apperrors.ErrInvalidState)
	assert.ErrorIs(t,
		CanDeleteApplication(admin("Netac"), student("CodEx", models.StatusRejected)),
		apperrors.ErrUnauthorized)
}

func TestCanViewGroupData(t *testing.T) {
	assert.NoError(t, CanViewGroupData(admin("CodEx")))
	assert.NoError(t, CanViewGroupData(superadmin()))
	assert.NoError(t, CanViewGroupData(student("CodEx", models.StatusApproved)))

	assert.ErrorIs(t, CanViewGroupData(student("CodEx", models.StatusPending)), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, CanViewGroupData(student("CodEx", models.StatusRejected)), apperrors.ErrUnauthorized)
}

func TestVisibleRequests(t *testing.T) {
	scope, err := VisibleRequests(student("CodEx", models.StatusApproved))
	require.NoError(t, err)
	assert.Equal(t, "CodEx", scope.Group)
	assert.Equal(t, []models.RequestStatus{models.RequestApproved}, scope.Statuses)

	scope, err = VisibleRequests(admin("Netac"))
	require.NoError(t, err)
	assert.Equal(t, "Netac", scope.Group)
	assert.Empty(t, scope.Statuses)

	scope, err = VisibleRequests(superadmin())
	require.NoError(t, err)
	assert.Empty(t, scope.Group)
	assert.Empty(t, scope.Statuses)

	_, err = VisibleRequests(student("CodEx", models.StatusPending))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestVisibleMembers(t *testing.T) {
	scope, err := VisibleMembers(student("CodEx", models.StatusApproved))
	require.NoError(t, err)
	assert.Equal(t, "CodEx", scope.Group)
	assert.Equal(t, []models.MembershipStatus{models.StatusApproved}, scope.Statuses)
	assert.False(t, scope.GroupFilterAllowed)

	scope, err = VisibleMembers(admin("CodEx"))
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]models.MembershipStatus{models.StatusApproved, models.StatusPending},
		scope.Statuses)

	scope, err = VisibleMembers(superadmin())
	require.NoError(t, err)
	assert.Empty(t, scope.Group)
	assert.True(t, scope.GroupFilterAllowed)

	_, err = VisibleMembers(student("CodEx", models.StatusRejected))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRequireAdminOfGroup(t *testing.T) {
	assert.NoError(t, RequireAdminOfGroup(admin("CodEx"), "CodEx"))
	assert.ErrorIs(t, RequireAdminOfGroup(admin("CodEx"), "Netac"), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, RequireAdminOfGroup(superadmin(), "CodEx"), apperrors.ErrUnauthorized)
}
