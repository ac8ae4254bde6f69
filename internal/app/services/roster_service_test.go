package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

func TestReplace_LastWriterWins(t *testing.T) {
	store := newFakeOfficerStore()
	svc := NewRosterService(store, nopLogger())
	ctx := context.Background()
	admin := adminAccount(10, "CodEx")

	require.NoError(t, svc.Replace(ctx, admin, []dto.OfficerEntry{
		{Name: "Alice", Position: "President"},
		{Name: "Bob", Position: "Secretary"},
	}))
	require.NoError(t, svc.Replace(ctx, admin, []dto.OfficerEntry{
		{Name: "Carol", Position: "President"},
	}))

	officers, err := svc.List(ctx, admin, "")
	require.NoError(t, err)
	require.Len(t, officers, 1, "second replace removes every officer from the first")
	assert.Equal(t, "Carol", officers[0].Name)
}

func TestReplace_RequiresAdmin(t *testing.T) {
	svc := NewRosterService(newFakeOfficerStore(), nopLogger())
	ctx := context.Background()

	err := svc.Replace(ctx, studentAccount(1, "CodEx", models.StatusApproved), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	err = svc.Replace(ctx, superadminAccount(1), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestReplace_RejectsBlankEntries(t *testing.T) {
	svc := NewRosterService(newFakeOfficerStore(), nopLogger())

	err := svc.Replace(context.Background(), adminAccount(10, "CodEx"), []dto.OfficerEntry{
		{Name: "  ", Position: "President"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestList_ScopedToOwnGroup(t *testing.T) {
	store := newFakeOfficerStore()
	svc := NewRosterService(store, nopLogger())
	ctx := context.Background()

	require.NoError(t, svc.Replace(ctx, adminAccount(10, "CodEx"), []dto.OfficerEntry{
		{Name: "Alice", Position: "President"},
	}))
	require.NoError(t, svc.Replace(ctx, adminAccount(11, "Netac"), []dto.OfficerEntry{
		{Name: "Dan", Position: "President"},
	}))

	// A group filter from a non-superadmin is overridden by their own group.
	officers, err := svc.List(ctx, adminAccount(10, "CodEx"), "Netac")
	require.NoError(t, err)
	require.Len(t, officers, 1)
	assert.Equal(t, "Alice", officers[0].Name)

	officers, err = svc.List(ctx, superadminAccount(1), "Netac")
	require.NoError(t, err)
	require.Len(t, officers, 1)
	assert.Equal(t, "Dan", officers[0].Name)
}

func TestList_PendingStudentBlocked(t *testing.T) {
	svc := NewRosterService(newFakeOfficerStore(), nopLogger())

	_, err := svc.List(context.Background(), studentAccount(1, "CodEx", models.StatusPending), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
