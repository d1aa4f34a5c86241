package services

import (
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/services/dto"
	"ideahub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// CreateReview вставляет отзыв и синхронно пересчитывает средний рейтинг
	// идеи в той же транзакции. Отложенного пересчета нет.
	CreateReview(db *gorm.DB, reviewerID, ideaID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByIdea(db *gorm.DB, ideaID string) (*dto.ReviewListResponse, error)
}

type ReviewServiceImpl struct {
	reviewRepo repositories.ReviewRepository
	ideaRepo   repositories.IdeaRepository
	userRepo   repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	ideaRepo repositories.IdeaRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		ideaRepo:   ideaRepo,
		userRepo:   userRepo,
	}
}

func (s *ReviewServiceImpl) CreateReview(db *gorm.DB, reviewerID, ideaID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.ideaRepo.FindByID(db, ideaID); err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.ErrIdeaNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	review := &models.Review{
		IdeaID:     ideaID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	// Вставка отзыва и обновление avg_rating коммитятся как одно целое:
	// промежуточное состояние с устаревшим средним наружу не видно.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}

		avg, err := s.reviewRepo.AverageRatingForIdea(tx, ideaID)
		if err != nil {
			return err
		}

		return s.ideaRepo.UpdateRating(tx, ideaID, avg)
	})
	if err != nil {
		return nil, apperrors.TransactionFailure(err)
	}

	return s.buildReviewResponse(db, review), nil
}

func (s *ReviewServiceImpl) ListByIdea(db *gorm.DB, ideaID string) (*dto.ReviewListResponse, error) {
	idea, err := s.ideaRepo.FindByID(db, ideaID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.ErrIdeaNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByIdea(db, ideaID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.reviewRepo.CountByIdea(db, ideaID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviewToResponse(&reviews[i]))
	}

	return &dto.ReviewListResponse{
		Reviews:   out,
		Total:     total,
		AvgRating: idea.AvgRating,
	}, nil
}

func (s *ReviewServiceImpl) buildReviewResponse(db *gorm.DB, review *models.Review) *dto.ReviewResponse {
	resp := reviewToResponse(review)
	if resp.ReviewerName == "" {
		if user, err := s.userRepo.FindByID(db, review.ReviewerID); err == nil {
			resp.ReviewerName = user.Name
		}
	}
	return resp
}

func reviewToResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:         review.ID,
		IdeaID:     review.IdeaID,
		ReviewerID: review.ReviewerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
	if review.Reviewer != nil {
		resp.ReviewerName = review.Reviewer.Name
	}
	return resp
}
