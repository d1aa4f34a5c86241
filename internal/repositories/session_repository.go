package repositories

import (
	"errors"
	"time"

	"ideahub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	// FindByToken возвращает живую сессию по ее токену.
	// Протухшая или удаленная сессия - ErrSessionNotFound.
	FindByToken(db *gorm.DB, token string) (*models.Session, error)
	DeleteByUser(db *gorm.DB, userID string) error
	// CleanExpired подчищает протухшие сессии. Вызывается оппортунистически при логине.
	CleanExpired(db *gorm.DB) error
}

type SessionRepositoryImpl struct{}

func NewSessionRepository() SessionRepository {
	return &SessionRepositoryImpl{}
}

func (r *SessionRepositoryImpl) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	err := db.First(&session, "token = ? AND expires_at > ?", token, time.Now()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.Session{}, "user_id = ?", userID).Error
}

func (r *SessionRepositoryImpl) CleanExpired(db *gorm.DB) error {
	return db.Delete(&models.Session{}, "expires_at < ?", time.Now()).Error
}
