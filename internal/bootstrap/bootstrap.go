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

	appAuth "github.com/tinkerlab/labtrack/internal/app/auth"
	appControllers "github.com/tinkerlab/labtrack/internal/app/controllers"
	appMigrations "github.com/tinkerlab/labtrack/internal/app/migrations"
	appRepos "github.com/tinkerlab/labtrack/internal/app/repositories"
	appRoutes "github.com/tinkerlab/labtrack/internal/app/routes"
	appServices "github.com/tinkerlab/labtrack/internal/app/services"
	"github.com/tinkerlab/labtrack/internal/config"
	"github.com/tinkerlab/labtrack/internal/db"
	appMiddleware "github.com/tinkerlab/labtrack/internal/middleware"
	pkgAuth "github.com/tinkerlab/labtrack/internal/pkg/auth"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
	"github.com/tinkerlab/labtrack/internal/pkg/metrics"
	"github.com/tinkerlab/labtrack/internal/pkg/revocation"
	"github.com/tinkerlab/labtrack/internal/pkg/validation"
	"github.com/tinkerlab/labtrack/internal/pkg/websocket"
	"github.com/tinkerlab/labtrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	AuthzService *appAuth.AuthorizationService
	JWTService   *pkgAuth.JWTService
	Revocation   revocation.Store
	Redis        *redis.Client // nil when revocations live in memory
	Hub          *websocket.Hub

	AuthService         *appServices.AuthService
	EquipmentService    appServices.EquipmentService
	ReservationService  appServices.ReservationService
	NotificationService appServices.NotificationService
	UsageService        appServices.UsageService
	MaintenanceService  appServices.MaintenanceService
	TrainingService     appServices.TrainingService
	AnalyticsService    appServices.AnalyticsService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// ConfigPath returns the config file location, overridable with CONFIG_PATH
func ConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(dbPool), appRepos.NewEquipmentRepository(dbPool), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// NewRevocationStore returns a Redis-backed store when Redis is configured,
// otherwise an in-process one. The returned client is nil in the second case.
func NewRevocationStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (revocation.Store, *redis.Client, error) {
	if !cfg.RedisEnabled() {
		lgr.Warn().Msg("Redis not configured, token revocations are kept in memory")
		return revocation.NewMemoryStore(), nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Token revocations stored in Redis")
	return revocation.NewRedisStore(client), client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, conn db.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(conn)
	deps.AuthzService = appAuth.NewAuthorizationService(nil)

	tokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Revocation, deps.Redis, err = NewRevocationStore(context.Background(), cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, deps.Revocation, logger.Component("auth"))
	deps.EquipmentService = appServices.NewEquipmentService(deps.Repos.EquipmentRepository, deps.AuthzService)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, deps.Hub)
	deps.ReservationService = appServices.NewReservationService(
		deps.Repos.ReservationRepository,
		deps.Repos.EquipmentRepository,
		deps.NotificationService,
		deps.AuthzService,
		appServices.WorkflowConfig{
			ApprovalRecipient:    cfg.Workflow.ApprovalRecipient,
			RejectionDefaultNote: cfg.Workflow.RejectionDefaultNote,
		},
	)
	deps.UsageService = appServices.NewUsageService(deps.Repos.UsageLogRepository, deps.Repos.EquipmentRepository, deps.AuthzService)
	deps.MaintenanceService = appServices.NewMaintenanceService(deps.Repos.MaintenanceRepository, deps.Repos.EquipmentRepository, deps.AuthzService)
	deps.TrainingService = appServices.NewTrainingService(deps.Repos.TrainingRepository, deps.AuthzService)
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.AnalyticsRepository, deps.AuthzService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Revocation, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService),
		Equipment:    appControllers.NewEquipmentController(deps.EquipmentService),
		Reservation:  appControllers.NewReservationController(deps.ReservationService),
		Usage:        appControllers.NewUsageController(deps.UsageService),
		Maintenance:  appControllers.NewMaintenanceController(deps.MaintenanceService),
		Training:     appControllers.NewTrainingController(deps.TrainingService),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Analytics:    appControllers.NewAnalyticsController(deps.AnalyticsService),
		WebSocket:    websocket.NewHandler(deps.Hub, logger.Component("websocket")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinRules(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
		lgr.Info().Str("path", cfg.Metrics.Path).Msg("Prometheus metrics exposed")
	}

	return router, nil
}
