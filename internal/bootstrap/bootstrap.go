// Package bootstrap wires configuration, database, repositories,
// services and controllers into a runnable application.
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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/englishclub/academy/docs" // Import generated swagger docs
	appControllers "github.com/englishclub/academy/internal/app/controllers"
	appMigrations "github.com/englishclub/academy/internal/app/migrations"
	appRepos "github.com/englishclub/academy/internal/app/repositories"
	appRoutes "github.com/englishclub/academy/internal/app/routes"
	appServices "github.com/englishclub/academy/internal/app/services"
	"github.com/englishclub/academy/internal/config"
	"github.com/englishclub/academy/internal/db"
	appMiddleware "github.com/englishclub/academy/internal/middleware"
	pkgAuth "github.com/englishclub/academy/internal/pkg/auth"
	"github.com/englishclub/academy/internal/pkg/helpers"
	"github.com/englishclub/academy/internal/pkg/logger"
	"github.com/englishclub/academy/internal/pkg/notify"
	"github.com/englishclub/academy/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	CourseService        appServices.CourseService
	StudentService       appServices.StudentService
	AttendanceService    appServices.AttendanceService
	GradeService         appServices.GradeService
	ReportService        appServices.ReportService
	PaymentService       appServices.PaymentService
	CommunicationService appServices.CommunicationService
	DashboardService     appServices.DashboardService

	AuthController          *appControllers.AuthController
	DashboardController     *appControllers.DashboardController
	CourseController        *appControllers.CourseController
	StudentController       *appControllers.StudentController
	AttendanceController    *appControllers.AttendanceController
	GradeController         *appControllers.GradeController
	ReportController        *appControllers.ReportController
	PaymentController       *appControllers.PaymentController
	CommunicationController *appControllers.CommunicationController
	ExportController        *appControllers.ExportController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Dispatcher     notify.Dispatcher
	Logger         zerolog.Logger
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding problems should not stop the server
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// setupDispatcher builds the communication dispatcher selected by
// configuration. A nil dispatcher disables the email fan-out but keeps
// communications stored.
func setupDispatcher(cfg *config.Config, lgr zerolog.Logger) notify.Dispatcher {
	switch strings.ToLower(cfg.Notify.Mode) {
	case "webhook":
		lgr.Info().Str("url", cfg.Notify.WebhookURL).Msg("Communications will be dispatched through the webhook")
		return notify.NewWebhookDispatcher(cfg.Notify.WebhookURL, cfg.Academy.Name, lgr)
	case "smtp":
		lgr.Info().Str("host", cfg.Notify.SMTP.Host).Msg("Communications will be dispatched over SMTP")
		return notify.NewSMTPDispatcher(notify.SMTPConfig{
			Host:          cfg.Notify.SMTP.Host,
			Port:          cfg.Notify.SMTP.Port,
			Username:      cfg.Notify.SMTP.Username,
			Password:      cfg.Notify.SMTP.Password,
			FromName:      cfg.Notify.SMTP.FromName,
			FromEmail:     cfg.Notify.SMTP.FromEmail,
			UseTLS:        cfg.Notify.SMTP.UseTLS,
			SubjectPrefix: cfg.Academy.Name,
		}, lgr)
	default:
		lgr.Warn().Str("mode", cfg.Notify.Mode).Msg("Communication dispatch disabled")
		return nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Dispatcher = setupDispatcher(cfg, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.PaymentRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.GradeRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository)
	deps.GradeService = appServices.NewGradeService(deps.Repos.GradeRepository, deps.Repos.StudentRepository)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.ReportRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.GradeRepository,
		deps.Repos.AttendanceRepository,
	)
	deps.PaymentService = appServices.NewPaymentService(
		deps.Repos.PaymentRepository,
		deps.Repos.PaymentConceptRepository,
		deps.Repos.StudentRepository,
	)
	deps.CommunicationService = appServices.NewCommunicationService(
		deps.Repos.CommunicationRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Dispatcher,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.StudentRepository,
		deps.Repos.PaymentRepository,
		deps.CourseService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.CourseService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.PaymentController = appControllers.NewPaymentController(deps.PaymentService)
	deps.CommunicationController = appControllers.NewCommunicationController(deps.CommunicationService)
	deps.ExportController = appControllers.NewExportController(deps.StudentService, deps.PaymentService, deps.CourseService, deps.GradeService)

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

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.CourseController,
		deps.StudentController,
		deps.AttendanceController,
		deps.GradeController,
		deps.ReportController,
		deps.PaymentController,
		deps.CommunicationController,
		deps.ExportController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
