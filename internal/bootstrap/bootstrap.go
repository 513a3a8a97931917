package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/courseapi/internal/app/controllers"
	appMigrations "github.com/yigit/courseapi/internal/app/migrations"
	"github.com/yigit/courseapi/internal/app/models"
	appRepos "github.com/yigit/courseapi/internal/app/repositories"
	appRoutes "github.com/yigit/courseapi/internal/app/routes"
	appServices "github.com/yigit/courseapi/internal/app/services"
	"github.com/yigit/courseapi/internal/config"
	"github.com/yigit/courseapi/internal/db"
	appMiddleware "github.com/yigit/courseapi/internal/middleware"
	"github.com/yigit/courseapi/internal/pkg/logger"
	"github.com/yigit/courseapi/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService
	CourseController *appControllers.CourseController
	Repos            *appRepos.Repositories
	Logger           zerolog.Logger
}

// Storage is the repository set plus the database handle backing it (nil for memory)
type Storage struct {
	Repos    *appRepos.Repositories
	Database *db.PostgresDB
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s != nil {
		s.Database.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: logger.ParseFormat(cfg.Logging.Format),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the PostgreSQL pool
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the SQL files of the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Storage.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupStorage builds the configured course store, migrating and seeding it as needed.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	storage := &Storage{}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := ConnectDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, err
		}
		storage.Database = database
		storage.Repos = appRepos.NewRepositories(database)
	case config.DriverMemory:
		storage.Repos = appRepos.NewMemoryRepositories()
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	lgr.Info().Str("driver", cfg.Storage.Driver).Msg("Course storage ready")

	if cfg.Storage.Seed {
		courses, err := seedCourses(cfg)
		if err != nil {
			storage.Close()
			return nil, err
		}
		if err := seed.CreateDefaultData(ctx, storage.Repos.CourseRepository, lgr, courses...); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage, nil
}

// seedCourses returns the configured catalogue, or nil for the built-in one
func seedCourses(cfg *config.Config) ([]*models.Course, error) {
	if cfg.Storage.SeedFile == "" {
		return nil, nil
	}
	courses, err := seed.LoadCoursesFile(cfg.Storage.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed file: %w", err)
	}
	return courses, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Repos: repos}
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.CourseController, cfg.Storage.Driver)

	return router
}
