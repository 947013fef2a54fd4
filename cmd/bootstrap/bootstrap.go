package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Asjad-cell/HealthLink/config"
	deliveryHttp "github.com/Asjad-cell/HealthLink/internal/delivery/http"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/handler"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/infrastructure/cache"
	"github.com/Asjad-cell/HealthLink/internal/infrastructure/database"
	"github.com/Asjad-cell/HealthLink/internal/repository"
	"github.com/Asjad-cell/HealthLink/internal/service"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/jwt"
	"github.com/Asjad-cell/HealthLink/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	shutdownTimeout  = 10 * time.Second
	syncTimeout      = 30 * time.Second
	roleCheckTimeout = 5 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{Log: setupLogger()}
	log := app.Log

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	if cfg.App.Env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
	log.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB.MigrateURL(), log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := verifyRoles(db); err != nil {
		return nil, fmt.Errorf("role table does not match role ids: %w", err)
	}

	// Redis only accelerates booking and backs the stats fallback, so the
	// service starts without it.
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.Warnf("Redis unavailable, continuing without slot holds: %v", err)
	}
	app.RedisClient = redisClient

	app.Server = initializeServer(cfg, log, db, redisClient, err == nil)

	return app, nil
}

// verifyRoles fails startup when the seeded roles drift from the ids that
// tokens carry.
func verifyRoles(db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), roleCheckTimeout)
	defer cancel()

	roles, err := repository.NewRoleRepository().FindAll(ctx, db)
	if err != nil {
		return err
	}
	return entity.CheckRoleSeed(roles)
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, redisUp bool) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	transactor := database.NewTransactor(db)
	maxLimit := cfg.Scheduling.PaginationMaxLimit

	// Repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotHoldService := service.NewSlotHoldService(db, redisClient, log, appointmentRepo, cfg.Scheduling.SlotHoldEnabled && redisUp)
	statsCache := service.NewStatsCache(redisClient, log)

	if slotHoldService.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		if err := slotHoldService.SyncOnStartup(ctx); err != nil {
			log.Warnf("Failed to rebuild slot holds: %v", err)
		}
		cancel()
	}

	// Usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, transactor, availabilityRepo, appointmentRepo, doctorProfileRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, transactor, appointmentRepo, availabilityRepo, doctorProfileRepo, patientProfileRepo, medicalRecordRepo, slotHoldService, auditService, maxLimit)
	statsUsecase := usecase.NewStatsUsecase(db, log, appointmentRepo, doctorProfileRepo, patientProfileRepo, medicalRecordRepo, statsCache)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, transactor, userRepo, roleRepo, doctorProfileRepo, auditService, maxLimit)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, transactor, userRepo, roleRepo, patientProfileRepo, medicalRecordRepo, appointmentRepo, auditService, maxLimit)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo, maxLimit)

	handlers := deliveryHttp.Handlers{
		Availability: handler.NewAvailabilityHandler(availabilityUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator, cfg.App.Timezone),
		Stats:        handler.NewStatsHandler(statsUsecase, cfg.App.Timezone),
		Doctor:       handler.NewDoctorHandler(doctorProfileUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientProfileUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
	}

	router := deliveryHttp.NewRouter(
		handlers,
		middleware.NewAuthMiddleware(jwtService),
		middleware.NewCORSMiddleware(cfg.App.AllowedOrigins),
		middleware.NewLoggingMiddleware(log),
		healthChecks(db, redisClient)...,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func healthChecks(db *gorm.DB, redisClient *redis.Client) []deliveryHttp.HealthCheck {
	checks := []deliveryHttp.HealthCheck{{
		Name:     "postgres",
		Required: true,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if redisClient != nil {
		checks = append(checks, deliveryHttp.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}
	return checks
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes the database and Redis connections
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
}
