package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appAuth "github.com/sispe-project/sispe/internal/app/auth"
	appControllers "github.com/sispe-project/sispe/internal/app/controllers"
	appMigrations "github.com/sispe-project/sispe/internal/app/migrations"
	appRepos "github.com/sispe-project/sispe/internal/app/repositories"
	appRoutes "github.com/sispe-project/sispe/internal/app/routes"
	appServices "github.com/sispe-project/sispe/internal/app/services"
	"github.com/sispe-project/sispe/internal/config"
	"github.com/sispe-project/sispe/internal/db"
	appMiddleware "github.com/sispe-project/sispe/internal/middleware"
	pkgAuth "github.com/sispe-project/sispe/internal/pkg/auth"
	"github.com/sispe-project/sispe/internal/pkg/helpers"
	"github.com/sispe-project/sispe/internal/pkg/logger"
	"github.com/sispe-project/sispe/internal/pkg/report"
	"github.com/sispe-project/sispe/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	UserService           *appServices.UserService
	StudentService        *appServices.StudentService
	ObservationService    *appServices.ObservationService
	GuardianService       *appServices.GuardianService
	ReportService         *appServices.ReportService
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	StudentController     *appControllers.StudentController
	ObservationController *appControllers.ObservationController
	GuardianController    *appControllers.GuardianController
	ReportController      *appControllers.ReportController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	AuthzService          *appAuth.AuthorizationService
	Exporter              *report.Exporter
	Logger                zerolog.Logger
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

// SetupDatabase opens the store, applies migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.SQLiteDB, error) {
	lgr.Info().Str("path", cfg.Database.Path).Msg("Opening database...")
	database, err := db.NewSQLiteDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Applying database migrations...")
	migrator := appMigrations.NewMigrator(database.DB)
	if err := migrator.Apply(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, database.DB, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.SQLiteDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.DB)

	var err error
	deps.Exporter, err = report.NewExporter(cfg.Reports.Dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize report directory")
		return nil, fmt.Errorf("failed to initialize report directory: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.StudentRepository,
		deps.Repos.GuardianLinkRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.ReportService = appServices.NewReportService(
		deps.Repos.ObservationRepository,
		deps.AuthzService,
		deps.Exporter,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.AuthzService,
		deps.Exporter,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.UserRepository,
		deps.AuthzService,
		deps.ReportService,
		deps.Exporter,
		lgr,
	)
	deps.ObservationService = appServices.NewObservationService(
		deps.Repos.ObservationRepository,
		deps.AuthzService,
		deps.ReportService,
		lgr,
	)
	deps.GuardianService = appServices.NewGuardianService(
		deps.Repos.GuardianLinkRepository,
		deps.Repos.UserRepository,
		deps.Repos.StudentRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.ObservationController = appControllers.NewObservationController(deps.ObservationService)
	deps.GuardianController = appControllers.NewGuardianController(deps.GuardianService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Swagger UI, fed by the annotations on the controllers
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.StudentController,
		deps.ObservationController,
		deps.GuardianController,
		deps.ReportController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
