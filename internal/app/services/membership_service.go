package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/access"
	"github.com/ejmancilla/sigms/internal/app/groups"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/app/repositories"
	"github.com/ejmancilla/sigms/internal/metrics"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
	"github.com/ejmancilla/sigms/internal/pkg/auth"
)

// MembershipService owns the student application workflow: registration,
// approval transitions, deletion of rejected applications, and member
// listings.
type MembershipService struct {
	accounts AccountStore
	catalog  *groups.Catalog
	logger   zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(accounts AccountStore, catalog *groups.Catalog, logger zerolog.Logger) *MembershipService {
	return &MembershipService{
		accounts: accounts,
		catalog:  catalog,
		logger:   logger,
	}
}

// Register creates a pending student application. The username is the
// student number; there is no auto-login.
func (s *MembershipService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if !s.catalog.Contains(req.Group) {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, req.Group)
	}

	studentNumber := strings.TrimSpace(req.StudentNumber)
	if studentNumber == "" {
		return fmt.Errorf("%w: student number required", apperrors.ErrValidationFailed)
	}

	exists, err := s.accounts.StudentNumberExists(ctx, studentNumber)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: student number already registered", apperrors.ErrDuplicateKey)
	}

	exists, err = s.accounts.UsernameExists(ctx, studentNumber)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username already taken", apperrors.ErrDuplicateKey)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	status := models.StatusPending
	account := &models.Account{
		Username:      studentNumber,
		Password:      hash,
		Role:          models.RoleStudent,
		Name:          req.Name,
		Email:         req.Email,
		Group:         req.Group,
		StudentNumber: &studentNumber,
		Year:          &req.Year,
		Section:       &req.Section,
		Status:        &status,
	}
	if req.Major != "" {
		account.Major = &req.Major
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("studentNumber", studentNumber).Str("group", req.Group).Msg("Membership application submitted")
	return nil
}

// Transition applies an approval action to a student application. Any
// action is valid from any current status; reconsider walks a decision
// back to pending.
func (s *MembershipService) Transition(ctx context.Context, actor *models.Account, accountID int64, actionStr string) error {
	action, err := models.ParseTransitionAction(actionStr)
	if err != nil {
		return err
	}

	target, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := access.CanTransition(actor, target); err != nil {
		return err
	}

	if err := s.accounts.UpdateStatus(ctx, target.ID, action.Status()); err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(action)).Inc()
	s.logger.Info().
		Int64("accountId", target.ID).
		Int64("adminId", actor.ID).
		Str("action", string(action)).
		Msg("Membership status transitioned")
	return nil
}

// DeleteApplication removes a rejected application from the actor's group.
func (s *MembershipService) DeleteApplication(ctx context.Context, actor *models.Account, accountID int64) error {
	target, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := access.CanDeleteApplication(actor, target); err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("accountId", target.ID).Int64("adminId", actor.ID).Msg("Rejected application deleted")
	return nil
}

// ListMembers returns the student accounts the actor may see, narrowed by
// the caller-supplied filters. A group filter is honored only for the
// superadmin.
func (s *MembershipService) ListMembers(ctx context.Context, actor *models.Account, query *dto.MemberListQuery) ([]*models.Account, error) {
	scope, err := access.VisibleMembers(actor)
	if err != nil {
		return nil, err
	}

	filter := repositories.StudentFilter{
		Group:        scope.Group,
		Statuses:     scope.Statuses,
		Section:      query.Section,
		Major:        query.Major,
		NumberSearch: query.NumberSearch,
	}
	if query.Year != nil {
		filter.Year = *query.Year
	}
	if scope.GroupFilterAllowed && query.Group != "" {
		filter.Group = query.Group
	}
	if query.Status != "" {
		status, err := models.ParseMembershipStatus(query.Status)
		if err != nil {
			return nil, err
		}
		if len(scope.Statuses) == 0 || containsStatus(scope.Statuses, status) {
			filter.Statuses = []models.MembershipStatus{status}
		}
	}

	return s.accounts.ListStudents(ctx, filter)
}

// ReviewQueue returns the actor's group applications in the given status,
// newest first.
func (s *MembershipService) ReviewQueue(ctx context.Context, actor *models.Account, status models.MembershipStatus) ([]*models.Account, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	return s.accounts.ListStudents(ctx, repositories.StudentFilter{
		Group:         actor.Group,
		Statuses:      []models.MembershipStatus{status},
		OrderByIDDesc: true,
	})
}

// PendingApplications lists every pending application system-wide. The
// superadmin can view but not act on these.
func (s *MembershipService) PendingApplications(ctx context.Context, actor *models.Account) ([]*models.Account, error) {
	if err := access.RequireSuperadmin(actor); err != nil {
		return nil, err
	}

	return s.accounts.ListStudents(ctx, repositories.StudentFilter{
		Statuses:      []models.MembershipStatus{models.StatusPending},
		OrderByIDDesc: true,
	})
}

// FilterOptions returns the distinct values member-list filters can take.
func (s *MembershipService) FilterOptions(ctx context.Context, actor *models.Account) (*repositories.MemberFilterOptions, error) {
	if actor.Role == models.RoleStudent {
		if err := access.CanViewGroupData(actor); err != nil {
			return nil, err
		}
	}
	return s.accounts.FilterOptions(ctx)
}

// UpdateProfile applies a self-service profile edit. Student-only fields
// are ignored for admin and superadmin actors; a group change never
// re-triggers approval.
func (s *MembershipService) UpdateProfile(ctx context.Context, actor *models.Account, req *dto.UpdateProfileRequest) error {
	update := repositories.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	}
	if actor.Role == models.RoleStudent {
		update.Year = req.Year
		update.Section = req.Section
		update.Major = req.Major
		if req.Group != nil {
			if !s.catalog.Contains(*req.Group) {
				return fmt.Errorf("%w: %q", apperrors.ErrUnknownGroup, *req.Group)
			}
			update.Group = req.Group
		}
	}

	return s.accounts.UpdateProfile(ctx, actor.ID, update)
}

func containsStatus(statuses []models.MembershipStatus, status models.MembershipStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
