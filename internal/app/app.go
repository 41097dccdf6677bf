package app

import (
	"context"
	"fmt"

	"ishtop_backend/internal/config"
	"ishtop_backend/internal/handlers"
	"ishtop_backend/internal/logger"
	"ishtop_backend/internal/middleware"
	"ishtop_backend/internal/notify"
	"ishtop_backend/internal/repositories"
	"ishtop_backend/internal/routes"
	"ishtop_backend/internal/services"
	"ishtop_backend/internal/validator"
	"ishtop_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter, orderWorker := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orderWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.OrderWorker) {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(gormDB)
	sessionRepo := repositories.NewSessionRepository(gormDB)
	otpRepo := repositories.NewOtpRepository(gormDB)
	orderRepo := repositories.NewOrderRepository(gormDB)
	applicantRepo := repositories.NewApplicantRepository(gormDB)
	vacancyAppRepo := repositories.NewVacancyApplicationRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	contactRepo := repositories.NewContactLogRepository(gormDB)

	// --- Провайдеры уведомлений (выбираются один раз при старте) ---
	smsProvider := newSMSProvider(cfg)
	emailProvider := newEmailProvider(cfg)

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, sessionRepo, otpRepo, smsProvider, emailProvider, cfg)
	orderService := services.NewOrderService(orderRepo, userRepo, contactRepo)
	applicationService := services.NewApplicationService(orderRepo, applicantRepo, vacancyAppRepo, reviewRepo)
	workerService := services.NewWorkerService(userRepo, reviewRepo, applicantRepo)
	reviewService := services.NewReviewService(reviewRepo, orderRepo, applicantRepo)

	// --- Хэндлеры ---
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, authService, cfg.Session.CookieSecure),
		OrderHandler:       handlers.NewOrderHandler(base, orderService, applicationService),
		VacancyHandler:     handlers.NewVacancyHandler(base, orderService, applicationService),
		ApplicationHandler: handlers.NewApplicationHandler(base, applicationService),
		WorkerHandler:      handlers.NewWorkerHandler(base, workerService, reviewService),
		ReviewHandler:      handlers.NewReviewHandler(base, reviewService),
		GeoHandler:         handlers.NewGeoHandler(base),
	}

	// --- Gin ---
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	ginRouter.Use(middleware.SessionMiddleware(authService, cfg.Session.CookieSecure))

	routes.RegisterRoutes(ginRouter, appHandlers)

	orderWorker := workers.NewOrderWorker(orderRepo, otpRepo)
	return ginRouter, orderWorker
}

func newSMSProvider(cfg *config.Config) notify.SMSProvider {
	switch cfg.SMS.Provider {
	case "eskiz":
		logger.Info("SMS provider: eskiz")
		return notify.NewEskizProvider(cfg.SMS.BaseURL, cfg.SMS.Email, cfg.SMS.Password, cfg.SMS.From)
	default:
		logger.Warn("SMS provider: mock (codes are written to the log)")
		return notify.NewMockSMSProvider()
	}
}

func newEmailProvider(cfg *config.Config) notify.EmailProvider {
	switch cfg.Email.Provider {
	case "smtp":
		logger.Info("Email provider: smtp", "host", cfg.Email.SMTPHost)
		return notify.NewSMTPProvider(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername, cfg.Email.SMTPPassword,
			cfg.Email.FromEmail, cfg.Email.FromName,
		)
	default:
		logger.Warn("Email provider: mock (codes are written to the log)")
		return notify.NewMockEmailProvider()
	}
}
