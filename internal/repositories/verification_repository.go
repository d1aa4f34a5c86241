package repositories

import (
	"errors"

	"ideahub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationRequestNotFound = errors.New("verification request not found")

type VerificationRepository interface {
	Create(db *gorm.DB, req *models.VerificationRequest) error
	FindByID(db *gorm.DB, id string) (*models.VerificationRequest, error)
	FindByStatus(db *gorm.DB, status models.VerificationStatus) ([]models.VerificationRequest, error)
	FindByUser(db *gorm.DB, userID string) ([]models.VerificationRequest, error)
	Update(db *gorm.DB, req *models.VerificationRequest) error
	CountByStatus(db *gorm.DB, status models.VerificationStatus) (int64, error)
}

type VerificationRepositoryImpl struct{}

func NewVerificationRepository() VerificationRepository {
	return &VerificationRepositoryImpl{}
}

func (r *VerificationRepositoryImpl) Create(db *gorm.DB, req *models.VerificationRequest) error {
	return db.Create(req).Error
}

func (r *VerificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := db.Preload("User").First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *VerificationRepositoryImpl) FindByStatus(db *gorm.DB, status models.VerificationStatus) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	err := db.Preload("User").Where("status = ?", status).
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.VerificationRequest, error) {
	var reqs []models.VerificationRequest
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepositoryImpl) Update(db *gorm.DB, req *models.VerificationRequest) error {
	return db.Save(req).Error
}

func (r *VerificationRepositoryImpl) CountByStatus(db *gorm.DB, status models.VerificationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.VerificationRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
