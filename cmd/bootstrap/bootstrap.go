package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthlink/config"
	deliveryHttp "healthlink/internal/delivery/http"
	"healthlink/internal/delivery/http/handler"
	"healthlink/internal/delivery/http/middleware"
	"healthlink/internal/infrastructure/cache"
	"healthlink/internal/infrastructure/database"
	"healthlink/internal/infrastructure/messaging"
	"healthlink/internal/repository"
	"healthlink/internal/service"
	"healthlink/internal/usecase"
	"healthlink/pkg/jwt"
	"healthlink/pkg/validator"

	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	RabbitMQConn *amqp091.Connection
	Server       *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize RabbitMQ. Events are best-effort, so a missing broker
	// downgrades to a noop dispatcher instead of failing startup.
	dispatcher := service.NewNoopDispatcher()
	if cfg.RabbitMQ.Host != "" {
		conn, err := messaging.NewRabbitMQConnection(cfg.RabbitMQ)
		if err != nil {
			logrus.Warnf("RabbitMQ unavailable, notifications disabled: %v", err)
		} else {
			app.RabbitMQConn = conn
			dispatcher, err = service.NewRabbitMQDispatcher(conn, cfg.RabbitMQ.Exchange, logrus.StandardLogger())
			if err != nil {
				return nil, fmt.Errorf("failed to create event dispatcher: %w", err)
			}
		}
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, dispatcher)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dispatcher service.NotificationDispatcher) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	practitionerRepo := repository.NewPractitionerProfileRepository()
	patientRepo := repository.NewPatientProfileRepository()
	workingHoursRepo := repository.NewWorkingHoursRepository()
	facilityRepo := repository.NewFacilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	referralRepo := repository.NewReferralRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	slotLocker := service.NewRedisSlotLocker(redisClient, cfg.Scheduling.SlotLockTTL)

	// Initialize coordinator
	coordinator := usecase.NewConsistencyCoordinator(log, referralRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, practitionerRepo, patientRepo, jwtService, redisClient)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, &cfg.Scheduling, appointmentRepo, patientRepo, practitionerRepo, coordinator, slotLocker, dispatcher, auditService)
	referralUsecase := usecase.NewReferralUsecase(db, log, &cfg.Scheduling, referralRepo, patientRepo, practitionerRepo, facilityRepo, dispatcher, auditService)
	practitionerUsecase := usecase.NewPractitionerUsecase(db, log, practitionerRepo, userRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, userRepo)
	facilityUsecase := usecase.NewFacilityUsecase(db, log, facilityRepo, auditService)
	workingHoursUsecase := usecase.NewWorkingHoursUsecase(db, log, workingHoursRepo, practitionerRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, jwtService, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	referralHandler := handler.NewReferralHandler(referralUsecase, customValidator)
	practitionerHandler := handler.NewPractitionerHandler(practitionerUsecase, workingHoursUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	facilityHandler := handler.NewFacilityHandler(facilityUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, appointmentHandler, referralHandler, practitionerHandler, patientHandler, facilityHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, rabbitmq)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.RabbitMQConn != nil {
		app.RabbitMQConn.Close()
	}
}
