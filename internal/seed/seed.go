// Package seed creates the bootstrap accounts on first startup: one
// superadmin and a director plus vicedirector admin pair per group.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ejmancilla/sigms/internal/app/groups"
	"github.com/ejmancilla/sigms/internal/app/models"
	"github.com/ejmancilla/sigms/internal/app/repositories"
	"github.com/ejmancilla/sigms/internal/config"
	"github.com/ejmancilla/sigms/internal/pkg/auth"
)

var adminPositions = []string{"director", "vicedirector"}

// CreateDefaultAccounts seeds the superadmin and per-group admin accounts,
// skipping any that already exist. Admin usernames and passwords are both
// lowercase-no-space(group)+position. These are development credentials
// only, never acceptable in production.
func CreateDefaultAccounts(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, catalog *groups.Catalog, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	lgr.Warn().Msg("Seeding default accounts with development credentials; rotate all passwords before exposing this instance")

	if err := seedAccount(ctx, userRepo, lgr, &models.Account{
		Username: cfg.Seed.SuperadminUsername,
		Role:     models.RoleSuperadmin,
		Name:     cfg.Seed.SuperadminName,
		Email:    cfg.Seed.SuperadminEmail,
	}, cfg.Seed.SuperadminPassword); err != nil {
		return err
	}

	for _, group := range catalog.All() {
		slug := groups.Slug(group)
		for _, position := range adminPositions {
			username := slug + position
			account := &models.Account{
				Username: username,
				Role:     models.RoleAdmin,
				Name:     fmt.Sprintf("%s %s", group, position),
				Email:    fmt.Sprintf("%s@sigms.local", username),
				Group:    group,
				Position: position,
			}
			if err := seedAccount(ctx, userRepo, lgr, account, username); err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAccount(ctx context.Context, userRepo *repositories.UserRepository, lgr zerolog.Logger, account *models.Account, password string) error {
	exists, err := userRepo.UsernameExists(ctx, account.Username)
	if err != nil {
		return fmt.Errorf("check seed account %q: %w", account.Username, err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	account.Password = hash

	if err := userRepo.Create(ctx, account); err != nil {
		return fmt.Errorf("create seed account %q: %w", account.Username, err)
	}

	lgr.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("Seed account created")
	return nil
}
