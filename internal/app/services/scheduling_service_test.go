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

func newSchedulingFixture() (*SchedulingService, *fakeScheduleStore) {
	store := newFakeScheduleStore()
	return NewSchedulingService(store, nopLogger()), store
}

func eventRequest(date string) *dto.SubmitScheduleRequest {
	return &dto.SubmitScheduleRequest{
		Title: "Tech Summit",
		Date:  date,
		Kind:  "event",
	}
}

func meetingRequest(date, timeOfDay, room string) *dto.SubmitScheduleRequest {
	return &dto.SubmitScheduleRequest{
		Title: "Weekly Sync",
		Date:  date,
		Time:  timeOfDay,
		Room:  room,
		Kind:  "meeting",
	}
}

func TestSubmit_RequiresAdmin(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, studentAccount(1, "CodEx", models.StatusApproved), eventRequest("2024-05-01"))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Submit(ctx, superadminAccount(1), eventRequest("2024-05-01"))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSubmit_EventDateConflictAcrossGroups(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	first, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, first.ID, "approve", ""))

	// The date is a global exclusive resource for events; another group
	// cannot hold one the same day.
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-01"))
	assert.ErrorIs(t, err, apperrors.ErrDateConflict)

	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-02"))
	assert.NoError(t, err)
}

func TestSubmit_PendingEventDoesNotBlock(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)

	// Only approved events hold the date.
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-01"))
	assert.NoError(t, err)
}

func TestSubmit_MeetingSlotConflict(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	first, err := svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-01", "14:00", "A1"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, first.ID, "approve", ""))

	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), meetingRequest("2024-05-01", "14:00", "A1"))
	assert.ErrorIs(t, err, apperrors.ErrSlotConflict)

	// Changing any slot component frees the booking.
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), meetingRequest("2024-05-01", "14:00", "A2"))
	assert.NoError(t, err)
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), meetingRequest("2024-05-01", "15:00", "A1"))
	assert.NoError(t, err)
}

func TestSubmit_MeetingBlockedByApprovedEventSlot(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	event := eventRequest("2024-05-01")
	event.Time = "14:00"
	event.Room = "A1"
	first, err := svc.Submit(ctx, adminAccount(10, "CodEx"), event)
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, first.ID, "approve", ""))

	// An approved event carrying a time and room occupies the slot the
	// same way an approved meeting does.
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), meetingRequest("2024-05-01", "14:00", "A1"))
	assert.ErrorIs(t, err, apperrors.ErrSlotConflict)

	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), meetingRequest("2024-05-01", "14:00", "A2"))
	assert.NoError(t, err)
}

func TestSubmit_MeetingRequiresTimeAndRoom(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-01", "", "A1"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-01", "14:00", ""))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-01", "2pm", "A1"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmit_GroupForcedToActor(t *testing.T) {
	svc, store := newSchedulingFixture()
	ctx := context.Background()

	request, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)

	stored, err := store.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "CodEx", stored.Group)
	assert.Equal(t, models.RequestPending, stored.Status)
	assert.Equal(t, int64(10), stored.CreatedBy)
}

func TestDecide_SuperadminOnly(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()

	request, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)

	err = svc.Decide(ctx, adminAccount(10, "CodEx"), request.ID, "approve", "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestDecide_UnknownRequest(t *testing.T) {
	svc, _ := newSchedulingFixture()

	err := svc.Decide(context.Background(), superadminAccount(1), 999, "approve", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDecide_NoReconsiderPath(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()

	request, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)

	err = svc.Decide(ctx, superadminAccount(1), request.ID, "reconsider", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDecide_StoresFeedbackDurably(t *testing.T) {
	svc, store := newSchedulingFixture()
	ctx := context.Background()

	request, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, superadminAccount(1), request.ID, "reject", "clashes with finals week"))

	stored, err := store.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, stored.Status)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "clashes with finals week", *stored.Feedback)
}

func TestDecide_EmptyFeedbackStored(t *testing.T) {
	svc, store := newSchedulingFixture()
	ctx := context.Background()

	request, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, superadminAccount(1), request.ID, "reject", ""))

	stored, err := store.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Feedback, "feedback may be empty but is always stored")
	assert.Equal(t, "", *stored.Feedback)
}

func TestDecide_ApproveTripsConflict(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	// Both submitted while the date was free; only one approval can win.
	first, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	second, err := svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-01"))
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, super, first.ID, "approve", ""))
	err = svc.Decide(ctx, super, second.ID, "approve", "")
	assert.ErrorIs(t, err, apperrors.ErrDateConflict)
}

func TestListVisible_Scopes(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	approved, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, approved.ID, "approve", ""))

	_, err = svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-02", "14:00", "A1"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-03"))
	require.NoError(t, err)

	student := studentAccount(500, "CodEx", models.StatusApproved)
	visible, err := svc.ListVisible(ctx, student, &dto.ScheduleListQuery{})
	require.NoError(t, err)
	require.Len(t, visible, 1, "student sees only approved own-group requests")
	assert.Equal(t, approved.ID, visible[0].ID)

	visible, err = svc.ListVisible(ctx, adminAccount(10, "CodEx"), &dto.ScheduleListQuery{})
	require.NoError(t, err)
	assert.Len(t, visible, 2, "admin sees all statuses of own group")

	visible, err = svc.ListVisible(ctx, super, &dto.ScheduleListQuery{})
	require.NoError(t, err)
	assert.Len(t, visible, 3, "superadmin sees everything")

	pending := studentAccount(501, "CodEx", models.StatusPending)
	_, err = svc.ListVisible(ctx, pending, &dto.ScheduleListQuery{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestListVisible_StatusFilter(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	approved, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, approved.ID, "approve", ""))
	undecided, err := svc.Submit(ctx, adminAccount(10, "CodEx"), meetingRequest("2024-05-02", "14:00", "A1"))
	require.NoError(t, err)

	// Every status is a valid filter value, pending included.
	for _, tc := range []struct {
		status string
		wantID int64
	}{
		{"pending", undecided.ID},
		{"approved", approved.ID},
	} {
		visible, err := svc.ListVisible(ctx, adminAccount(10, "CodEx"), &dto.ScheduleListQuery{Status: tc.status})
		require.NoError(t, err, "status %q", tc.status)
		require.Len(t, visible, 1)
		assert.Equal(t, tc.wantID, visible[0].ID)
	}

	visible, err := svc.ListVisible(ctx, super, &dto.ScheduleListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, undecided.ID, visible[0].ID)

	_, err = svc.ListVisible(ctx, super, &dto.ScheduleListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPendingQueue(t *testing.T) {
	svc, _ := newSchedulingFixture()
	ctx := context.Background()
	super := superadminAccount(1)

	first, err := svc.Submit(ctx, adminAccount(10, "CodEx"), eventRequest("2024-05-01"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, adminAccount(11, "Netac"), eventRequest("2024-05-02"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, super, first.ID, "approve", ""))

	queue, err := svc.PendingQueue(ctx, super)
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	_, err = svc.PendingQueue(ctx, adminAccount(10, "CodEx"))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
