// Package bootstrap wires configuration, storage, services and HTTP
// routing into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ejmancilla/sigms/internal/app/controllers"
	"github.com/ejmancilla/sigms/internal/app/groups"
	appMigrations "github.com/ejmancilla/sigms/internal/app/migrations"
	appRepos "github.com/ejmancilla/sigms/internal/app/repositories"
	appRoutes "github.com/ejmancilla/sigms/internal/app/routes"
	appServices "github.com/ejmancilla/sigms/internal/app/services"
	"github.com/ejmancilla/sigms/internal/config"
	"github.com/ejmancilla/sigms/internal/db"
	"github.com/ejmancilla/sigms/internal/export"
	"github.com/ejmancilla/sigms/internal/metrics"
	appMiddleware "github.com/ejmancilla/sigms/internal/middleware"
	pkgAuth "github.com/ejmancilla/sigms/internal/pkg/auth"
	"github.com/ejmancilla/sigms/internal/pkg/logger"
	"github.com/ejmancilla/sigms/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Catalog              *groups.Catalog
	JWTService           *pkgAuth.JWTService
	AuthService          *appServices.AuthService
	MembershipService    *appServices.MembershipService
	SchedulingService    *appServices.SchedulingService
	RosterService        *appServices.RosterService
	DashboardService     *appServices.DashboardService
	ReportService        *appServices.ReportService
	AuthController       *appControllers.AuthController
	MembershipController *appControllers.MembershipController
	ScheduleController   *appControllers.ScheduleController
	RosterController     *appControllers.RosterController
	ReportController     *appControllers.ReportController
	DashboardController  *appControllers.DashboardController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	catalog, err := cfg.GroupCatalog()
	if err != nil {
		database.Close()
		return nil, err
	}
	if err := seed.CreateDefaultAccounts(context.Background(), database.Pool, cfg, catalog, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default accounts, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	catalog, err := cfg.GroupCatalog()
	if err != nil {
		return nil, err
	}
	deps.Catalog = catalog

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	users := deps.Repos.UserRepository
	schedules := deps.Repos.ScheduleRepository
	officers := deps.Repos.OfficerRepository

	deps.AuthService = appServices.NewAuthService(users, deps.JWTService, lgr)
	deps.MembershipService = appServices.NewMembershipService(users, catalog, lgr)
	deps.SchedulingService = appServices.NewSchedulingService(schedules, lgr)
	deps.RosterService = appServices.NewRosterService(officers, lgr)
	deps.DashboardService = appServices.NewDashboardService(users, schedules, officers, catalog, lgr)
	deps.ReportService = appServices.NewReportService(users, schedules, officers, catalog, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, users)

	renderer := export.NewWorkbookRenderer()

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.MembershipController = appControllers.NewMembershipController(deps.MembershipService, lgr)
	deps.ScheduleController = appControllers.NewScheduleController(deps.SchedulingService, lgr)
	deps.RosterController = appControllers.NewRosterController(deps.RosterService, lgr)
	deps.ReportController = appControllers.NewReportController(deps.ReportService, renderer, lgr)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.MembershipController,
		deps.ScheduleController,
		deps.RosterController,
		deps.ReportController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// parseDuration parses a config duration string, falling back to def.
func parseDuration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn().Str("value", value).Dur("default", def).Msg("Invalid duration in config, using default")
		return def
	}
	return d
}
