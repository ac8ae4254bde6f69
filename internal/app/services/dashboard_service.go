package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/access"
	"github.com/ejmancilla/sigms/internal/app/groups"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/repositories"
)

// DashboardService assembles the per-role landing views from read-only
// registry queries.
type DashboardService struct {
	accounts  AccountStore
	schedules ScheduleStore
	officers  OfficerStore
	catalog   *groups.Catalog
	logger    zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(accounts AccountStore, schedules ScheduleStore, officers OfficerStore, catalog *groups.Catalog, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		accounts:  accounts,
		schedules: schedules,
		officers:  officers,
		catalog:   catalog,
		logger:    logger,
	}
}

// StudentDashboard returns the student landing view. A pending or rejected
// student gets only their status; group data is withheld until approval.
func (s *DashboardService) StudentDashboard(ctx context.Context, actor *models.Account) (*dto.StudentDashboard, error) {
	board := &dto.StudentDashboard{Status: string(actor.MembershipStatusOrDefault())}
	if err := access.CanViewGroupData(actor); err != nil {
		return board, nil
	}

	board.Group = actor.Group

	count, err := s.accounts.CountStudents(ctx, actor.Group, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	board.MemberCount = count

	events, err := s.schedules.List(ctx, repositories.RequestFilter{
		Group:    actor.Group,
		Statuses: []models.RequestStatus{models.RequestApproved},
	})
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		board.Events = append(board.Events, dto.ToScheduleResponse(e))
	}

	officers, err := s.officers.ListByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	for _, o := range officers {
		board.Officers = append(board.Officers, dto.ToOfficerResponse(o))
	}

	return board, nil
}

// AdminDashboard returns the admin landing view for the actor's group.
func (s *DashboardService) AdminDashboard(ctx context.Context, actor *models.Account) (*dto.AdminDashboard, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	board := &dto.AdminDashboard{Group: actor.Group}

	counts := []struct {
		status models.MembershipStatus
		dest   *int
	}{
		{models.StatusApproved, &board.ApprovedCount},
		{models.StatusPending, &board.PendingCount},
		{models.StatusRejected, &board.RejectedCount},
	}
	for _, c := range counts {
		n, err := s.accounts.CountStudents(ctx, actor.Group, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	officerCount, err := s.officers.CountByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	board.OfficerCount = officerCount

	events, err := s.schedules.List(ctx, repositories.RequestFilter{
		Group:    actor.Group,
		Statuses: []models.RequestStatus{models.RequestApproved},
	})
	if err != nil {
		return nil, err
	}
	board.ApprovedEvents = make([]dto.ScheduleResponse, 0, len(events))
	for _, e := range events {
		board.ApprovedEvents = append(board.ApprovedEvents, dto.ToScheduleResponse(e))
	}

	return board, nil
}

// SuperadminDashboard returns the system-wide landing view: per-group
// student counts and the undecided schedule queue.
func (s *DashboardService) SuperadminDashboard(ctx context.Context, actor *models.Account) (*dto.SuperadminDashboard, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	board := &dto.SuperadminDashboard{}
	for _, group := range s.catalog.All() {
		// Every registered student counts here, whatever their status.
		count, err := s.accounts.CountStudents(ctx, group, "")
		if err != nil {
			return nil, err
		}
		board.GroupCounts = append(board.GroupCounts, dto.GroupCount{Group: group, Count: count})
		board.TotalStudents += count
	}

	pending, err := s.schedules.List(ctx, repositories.RequestFilter{
		Statuses: []models.RequestStatus{models.RequestPending},
	})
	if err != nil {
		return nil, err
	}
	board.PendingRequests = make([]dto.ScheduleResponse, 0, len(pending))
	for _, p := range pending {
		board.PendingRequests = append(board.PendingRequests, dto.ToScheduleResponse(p))
	}

	return board, nil
}
