package repositories

import (
	"errors"

	"ideahub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrIdeaNotFound = errors.New("idea not found")

type IdeaRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Idea, error)
	// FindAll возвращает идеи в порядке создания. Ранжирование делается в памяти
	// поверх этого списка, поэтому порядок здесь должен быть детерминированным.
	FindAll(db *gorm.DB) ([]models.Idea, error)
	FindByAuthor(db *gorm.DB, authorID string) ([]models.Idea, error)
	Create(db *gorm.DB, idea *models.Idea) error
	Update(db *gorm.DB, idea *models.Idea) error
	UpdateRating(db *gorm.DB, ideaID string, avgRating float64) error
	IncrementUpvotes(db *gorm.DB, ideaID string) error
	SetPriority(db *gorm.DB, ideaID string, priority bool) error
	// PromoteAllByAuthor выставляет priority всем идеям автора.
	// Вызывается внутри транзакции одобрения верификации.
	PromoteAllByAuthor(db *gorm.DB, authorID string) error
	Delete(db *gorm.DB, ideaID string) error
}

type IdeaRepositoryImpl struct{}

func NewIdeaRepository() IdeaRepository {
	return &IdeaRepositoryImpl{}
}

func (r *IdeaRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Idea, error) {
	var idea models.Idea
	err := db.Preload("Author").First(&idea, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return &idea, nil
}

func (r *IdeaRepositoryImpl) FindAll(db *gorm.DB) ([]models.Idea, error) {
	var ideas []models.Idea
	err := db.Preload("Author").Order("created_at ASC, id ASC").Find(&ideas).Error
	return ideas, err
}

func (r *IdeaRepositoryImpl) FindByAuthor(db *gorm.DB, authorID string) ([]models.Idea, error) {
	var ideas []models.Idea
	err := db.Where("author_id = ?", authorID).Order("created_at ASC").Find(&ideas).Error
	return ideas, err
}

func (r *IdeaRepositoryImpl) Create(db *gorm.DB, idea *models.Idea) error {
	return db.Create(idea).Error
}

func (r *IdeaRepositoryImpl) Update(db *gorm.DB, idea *models.Idea) error {
	return db.Save(idea).Error
}

func (r *IdeaRepositoryImpl) UpdateRating(db *gorm.DB, ideaID string, avgRating float64) error {
	result := db.Model(&models.Idea{}).Where("id = ?", ideaID).Update("avg_rating", avgRating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (r *IdeaRepositoryImpl) IncrementUpvotes(db *gorm.DB, ideaID string) error {
	// Атомарный инкремент на стороне БД: счетчик только растет
	result := db.Model(&models.Idea{}).Where("id = ?", ideaID).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (r *IdeaRepositoryImpl) SetPriority(db *gorm.DB, ideaID string, priority bool) error {
	result := db.Model(&models.Idea{}).Where("id = ?", ideaID).Update("priority", priority)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (r *IdeaRepositoryImpl) PromoteAllByAuthor(db *gorm.DB, authorID string) error {
	return db.Model(&models.Idea{}).Where("author_id = ?", authorID).
		Update("priority", true).Error
}

func (r *IdeaRepositoryImpl) Delete(db *gorm.DB, ideaID string) error {
	result := db.Delete(&models.Idea{}, "id = ?", ideaID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}
