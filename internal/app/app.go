package app

import (
	"database/sql"
	"errors"
	"fmt"

	"ideahub_backend/internal/auth"
	"ideahub_backend/internal/config"
	"ideahub_backend/internal/email"
	"ideahub_backend/internal/handlers"
	"ideahub_backend/internal/logger"
	"ideahub_backend/internal/middleware"
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/routes"
	"ideahub_backend/internal/services"
	"ideahub_backend/internal/storage"
	"ideahub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Данные админа по умолчанию. Используются только если в конфиге
// не заданы свои - чтобы свежая установка не осталась без админки.
const (
	defaultAdminEmail    = "admin@ideahub.local"
	defaultAdminPassword = "admin12345"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		// Ошибки уникальных индексов приходят как gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
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
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа запускаться нет смысла - модерация станет недоступна
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	verificationRepo := repositories.NewVerificationRepository()
	if pending, err := verificationRepo.CountByStatus(gormDB, models.VerificationStatusPending); err == nil && pending > 0 {
		logger.Info("Pending verification requests awaiting review", "count", pending)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// AutoMigrate создает/обновляет схему под все модели приложения
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Idea{},
		&models.Review{},
		&models.VerificationRequest{},
		&models.Upload{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, storageInstance)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Регистрация маршрутов делегирована пакету routes
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(cfg)
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		// SMTP не настроен - уведомления молча пропускаются
		emailProvider = &email.NoopProvider{}
		logger.Warn("Email disabled, notifications will not be sent")
	}

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	ideaRepo := repositories.NewIdeaRepository()
	reviewRepo := repositories.NewReviewRepository()
	verificationRepo := repositories.NewVerificationRepository()
	uploadRepo := repositories.NewUploadRepository()

	// --- Сервисы ---
	uploadConfig := services.UploadConfig{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}
	uploadService := services.NewUploadService(uploadRepo, storageInstance, uploadConfig)
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.JWT.TTL)
	ideaService := services.NewIdeaService(ideaRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, ideaRepo, userRepo)
	verificationService := services.NewVerificationService(verificationRepo, userRepo, ideaRepo, emailProvider)

	return &services.ServiceContainer{
		AuthService:         authService,
		IdeaService:         ideaService,
		ReviewService:       reviewService,
		VerificationService: verificationService,
		UploadService:       uploadService,
		EmailProvider:       emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		Auth:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		Idea:         handlers.NewIdeaHandler(baseHandler, container.IdeaService, container.ReviewService),
		Verification: handlers.NewVerificationHandler(baseHandler, container.VerificationService),
		File:         handlers.NewFileHandler(baseHandler, container.UploadService, storageInstance),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает первого администратора, если в базе нет ни одного.
// Идемпотентно: повторный запуск ничего не меняет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	userRepo := repositories.NewUserRepository()

	admins, err := userRepo.CountAdmins(db)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if admins > 0 {
		logger.Info("Admin user already exists. Skipping seeding.")
		return nil
	}

	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin credentials are not configured, falling back to defaults",
			"email", defaultAdminEmail)
		adminEmail = defaultAdminEmail
		adminPassword = defaultAdminPassword
	}

	if existing, err := userRepo.FindByEmail(db, adminEmail); err == nil {
		// Юзер с таким email есть, но без прав - поднимаем до админа
		existing.IsAdmin = true
		if err := userRepo.Update(db, existing); err != nil {
			return fmt.Errorf("failed to promote existing user to admin: %w", err)
		}
		logger.Warn("Existing user promoted to admin", "email", adminEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}
	if err := userRepo.Create(db, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
