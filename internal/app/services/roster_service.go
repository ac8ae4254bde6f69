package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/access"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
)

// RosterService owns per-group officer rosters.
type RosterService struct {
	officers OfficerStore
	logger   zerolog.Logger
}

// NewRosterService creates a new RosterService
func NewRosterService(officers OfficerStore, logger zerolog.Logger) *RosterService {
	return &RosterService{
		officers: officers,
		logger:   logger,
	}
}

// Replace swaps the actor's group roster for the submitted set. The
// previous roster is removed entirely; calling twice leaves only the
// second set.
func (s *RosterService) Replace(ctx context.Context, actor *models.Account, entries []dto.OfficerEntry) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}

	officers := make([]*models.Officer, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		position := strings.TrimSpace(entry.Position)
		if name == "" || position == "" {
			return fmt.Errorf("%w: officer name and position required", apperrors.ErrValidationFailed)
		}
		officers = append(officers, &models.Officer{
			Name:     name,
			Position: position,
			Group:    actor.Group,
		})
	}

	if err := s.officers.Replace(ctx, actor.Group, officers); err != nil {
		return err
	}

	s.logger.Info().Str("group", actor.Group).Int("count", len(officers)).Msg("Officer roster replaced")
	return nil
}

// List returns a group's roster. Admins and approved students read their
// own group; the superadmin may name any group.
func (s *RosterService) List(ctx context.Context, actor *models.Account, group string) ([]*models.Officer, error) {
	if err := access.CanViewGroupData(actor); err != nil {
		return nil, err
	}

	if actor.Role != models.RoleSuperadmin {
		group = actor.Group
	}
	if group == "" {
		return nil, fmt.Errorf("%w: group required", apperrors.ErrValidationFailed)
	}

	return s.officers.ListByGroup(ctx, group)
}
