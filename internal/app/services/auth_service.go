package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/models/dto"
	"github.com/ejmancilla/sigms/internal/pkg/apperrors"
	"github.com/ejmancilla/sigms/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	accounts   AccountStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts AccountStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the {username, password, claimed role} triple and issues a
// token pair. A role mismatch and a wrong password look identical to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password, roleStr string) (*dto.AuthResponse, error) {
	role, err := models.ParseRoleType(roleStr)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role", apperrors.ErrInvalidCredential)
	}

	account, err := s.accounts.GetByUsernameAndRole(ctx, username, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account not found for role", apperrors.ErrInvalidCredential)
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, password) {
		s.logger.Debug().Str("username", username).Msg("Password verification failed")
		return nil, fmt.Errorf("%w: password mismatch", apperrors.ErrInvalidCredential)
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.Info().Int64("userId", account.ID).Str("role", string(account.Role)).Msg("User logged in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			ExpiresIn:    expiresIn,
			RefreshToken: refreshToken,
		},
		User: dto.ToAccountResponse(account),
	}, nil
}

// RefreshToken validates a refresh token and issues a fresh pair for the
// same account.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", apperrors.ErrTokenInvalid)
		}
		return nil, err
	}

	accessToken, newRefresh, expiresIn, err := s.jwtService.GenerateTokenPair(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
		RefreshToken: newRefresh,
	}, nil
}

// ChangePassword replaces the actor's password after verifying the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *models.Account, currentPassword, newPassword string) error {
	if !auth.CheckPassword(actor.Password, currentPassword) {
		return fmt.Errorf("%w: current password mismatch", apperrors.ErrInvalidCredential)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", actor.ID).Msg("Password changed")
	return nil
}
