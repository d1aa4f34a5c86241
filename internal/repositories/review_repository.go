package repositories

import (
	"errors"

	"ideahub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByIdea(db *gorm.DB, ideaID string) ([]models.Review, error)
	CountByIdea(db *gorm.DB, ideaID string) (int64, error)
	// AverageRatingForIdea считает среднее по всем отзывам идеи.
	// Ровно 0.0 при отсутствии отзывов - это валидное состояние, не ошибка.
	AverageRatingForIdea(db *gorm.DB, ideaID string) (float64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByIdea(db *gorm.DB, ideaID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").Where("idea_id = ?", ideaID).
		Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) CountByIdea(db *gorm.DB, ideaID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("idea_id = ?", ideaID).Count(&count).Error
	return count, err
}

func (r *ReviewRepositoryImpl) AverageRatingForIdea(db *gorm.DB, ideaID string) (float64, error) {
	var avgRating float64
	err := db.Model(&models.Review{}).Where("idea_id = ?", ideaID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating).Error
	return avgRating, err
}
