package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ideahub_backend/internal/auth"
	"ideahub_backend/internal/email"
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB создает изолированную in-memory базу для одного теста.
// Имя уникально: cache=shared с одним именем протащил бы состояние между тестами.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Idea{},
		&models.Review{},
		&models.VerificationRequest{},
		&models.Upload{},
	)
	if err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate: %v", err)
	}

	return db
}

var testUserSeq int

// createTestUser создает пользователя напрямую в базе
func createTestUser(t *testing.T, db *gorm.DB, name string, isAdmin bool, badge string) *models.User {
	t.Helper()

	testUserSeq++
	hashed, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Не удалось хешировать пароль: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("user_%d_%d@test.com", testUserSeq, time.Now().UnixNano()),
		PasswordHash: hashed,
		IsAdmin:      isAdmin,
		Badge:        badge,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать тестового пользователя: %v", err)
	}
	return user
}

// createTestIdea создает идею напрямую в базе, минуя сервис
func createTestIdea(t *testing.T, db *gorm.DB, authorID, title string, priority bool) *models.Idea {
	t.Helper()

	idea := &models.Idea{
		Title:       title,
		Description: "test description for " + title,
		AuthorID:    &authorID,
		Priority:    priority,
	}
	if err := db.Create(idea).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую идею: %v", err)
	}
	return idea
}

// newTestServices собирает сервисы поверх общих репозиториев
func newTestServices() (*ServiceContainer, repositories.IdeaRepository) {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	ideaRepo := repositories.NewIdeaRepository()
	reviewRepo := repositories.NewReviewRepository()
	verificationRepo := repositories.NewVerificationRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, sessionRepo, 60),
		IdeaService:         NewIdeaService(ideaRepo, userRepo),
		ReviewService:       NewReviewService(reviewRepo, ideaRepo, userRepo),
		VerificationService: NewVerificationService(verificationRepo, userRepo, ideaRepo, &email.NoopProvider{}),
		EmailProvider:       &email.NoopProvider{},
	}, ideaRepo
}
