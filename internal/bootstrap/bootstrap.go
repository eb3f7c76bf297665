package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ozgur/teamup/internal/app/controllers"
	appMigrations "github.com/ozgur/teamup/internal/app/migrations"
	appRepos "github.com/ozgur/teamup/internal/app/repositories"
	appRoutes "github.com/ozgur/teamup/internal/app/routes"
	appServices "github.com/ozgur/teamup/internal/app/services"
	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/db"
	appMiddleware "github.com/ozgur/teamup/internal/middleware"
	pkgAuth "github.com/ozgur/teamup/internal/pkg/auth"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services               *appServices.Services
	TeamController         *appControllers.TeamController
	RecruitmentController  *appControllers.RecruitmentController
	JoinRequestController  *appControllers.JoinRequestController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	RedisClient            *redis.Client
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.RedisClient = db.NewRedisClient(cfg)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Services = appServices.NewServices(deps.Repos, deps.RedisClient, cfg)

	deps.TeamController = appControllers.NewTeamController(deps.Services.TeamService)
	deps.RecruitmentController = appControllers.NewRecruitmentController(
		deps.Services.RecruitmentService, deps.Services.ReconciliationService)
	deps.JoinRequestController = appControllers.NewJoinRequestController(
		deps.Services.TeamService, deps.Services.ReconciliationService)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.NotificationService)

	lgr.Info().Msg("Application dependencies initialized.")
	return deps, nil
}

// SetupRouter creates the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.TeamController,
		deps.RecruitmentController,
		deps.JoinRequestController,
		deps.NotificationController,
		deps.AuthMiddleware,
	)

	lgr.Info().Msg("Router configured.")
	return router
}
