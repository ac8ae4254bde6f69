package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/access"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/repositories"
	"github.com/ejmancilla/sigms/internal/metrics"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// SchedulingService owns event and meeting requests: submission with
// conflict checks, superadmin decisions, and role-scoped listings.
type SchedulingService struct {
	schedules ScheduleStore
	logger    zerolog.Logger
}

// NewSchedulingService creates a new SchedulingService
func NewSchedulingService(schedules ScheduleStore, logger zerolog.Logger) *SchedulingService {
	return &SchedulingService{
		schedules: schedules,
		logger:    logger,
	}
}

// Submit files a pending request for the actor's group. Events hold their
// date exclusively across all groups; meetings hold their exact
// (date, time, room) slot. Both checks run against approved requests only.
func (s *SchedulingService) Submit(ctx context.Context, actor *models.Account, req *dto.SubmitScheduleRequest) (*models.ScheduleRequest, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	kind, err := models.ParseRequestKind(req.Kind)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	request := &models.ScheduleRequest{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Group:       actor.Group,
		Kind:        kind,
		Status:      models.RequestPending,
		CreatedBy:   actor.ID,
	}

	switch kind {
	case models.KindEvent:
		taken, err := s.schedules.ApprovedEventExistsOnDate(ctx, req.Date)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDateConflict, req.Date)
		}
		if req.Time != "" {
			request.Time = &req.Time
		}
		if req.Room != "" {
			request.Room = &req.Room
		}
	case models.KindMeeting:
		if req.Time == "" || req.Room == "" {
			return nil, fmt.Errorf("%w: meetings require time and room", apperrors.ErrValidationFailed)
		}
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return nil, fmt.Errorf("%w: time must be HH:MM", apperrors.ErrValidationFailed)
		}
		taken, err := s.schedules.ApprovedSlotExistsAt(ctx, req.Date, req.Time, req.Room)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s %s %s", apperrors.ErrSlotConflict, req.Date, req.Time, req.Room)
		}
		request.Time = &req.Time
		request.Room = &req.Room
	}

	if err := s.schedules.Create(ctx, request); err != nil {
		return nil, err
	}

	metrics.ScheduleSubmitsTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Info().
		Int64("requestId", request.ID).
		Str("kind", string(kind)).
		Str("group", actor.Group).
		Msg("Schedule request submitted")
	return request, nil
}

// Decide records a superadmin approve or reject with optional feedback.
// There is no reconsider path for schedule requests; a decision that would
// double-book an approved slot fails with the matching conflict error.
func (s *SchedulingService) Decide(ctx context.Context, actor *models.Account, requestID int64, action, feedback string) error {
	if err := access.RequireSuperadmin(actor); err != nil {
		return err
	}

	var status models.RequestStatus
	switch action {
	case "approve":
		status = models.RequestApproved
	case "reject":
		status = models.RequestRejected
	default:
		return fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidationFailed, action)
	}

	if _, err := s.schedules.GetByID(ctx, requestID); err != nil {
		return err
	}

	if err := s.schedules.UpdateDecision(ctx, requestID, status, feedback); err != nil {
		return err
	}

	metrics.ScheduleDecisionsTotal.WithLabelValues(action).Inc()
	s.logger.Info().
		Int64("requestId", requestID).
		Str("status", string(status)).
		Msg("Schedule request decided")
	return nil
}

// ListVisible returns the requests an actor may see, optionally narrowed
// further by the query. Students only ever see approved requests of their
// own group.
func (s *SchedulingService) ListVisible(ctx context.Context, actor *models.Account, query *dto.ScheduleListQuery) ([]*models.ScheduleRequest, error) {
	scope, err := access.VisibleRequests(actor)
	if err != nil {
		return nil, err
	}

	filter := repositories.RequestFilter{
		Group:    scope.Group,
		Statuses: scope.Statuses,
	}
	if filter.Group == "" && query.Group != "" {
		filter.Group = query.Group
	}
	if query.Status != "" && len(scope.Statuses) == 0 {
		status, err := models.ParseRequestStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []models.RequestStatus{status}
	}

	return s.schedules.List(ctx, filter)
}

// PendingQueue returns all undecided requests system-wide for the
// superadmin's review.
func (s *SchedulingService) PendingQueue(ctx context.Context, actor *models.Account) ([]*models.ScheduleRequest, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	return s.schedules.List(ctx, repositories.RequestFilter{
		Statuses: []models.RequestStatus{models.RequestPending},
	})
}
