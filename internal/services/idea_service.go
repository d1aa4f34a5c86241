package services

import (
	"strings"

	"ideahub_backend/internal/algorithms"
	"ideahub_backend/internal/logger"
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/services/dto"
	"ideahub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type IdeaService interface {
	CreateIdea(db *gorm.DB, authorID string, req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error)
	GetIdea(db *gorm.DB, ideaID string) (*dto.IdeaResponse, error)
	// ListIdeas возвращает идеи, отсортированные рейтинговым движком.
	ListIdeas(db *gorm.DB) (*dto.IdeaListResponse, error)
	// SearchIdeas фильтрует без пересортировки, сохраняя порядок создания.
	SearchIdeas(db *gorm.DB, req *dto.SearchIdeasRequest) (*dto.IdeaListResponse, error)
	ListMyIdeas(db *gorm.DB, authorID string) (*dto.IdeaListResponse, error)
	// Upvote доступен анонимно (поведение исходной системы сохранено).
	Upvote(db *gorm.DB, ideaID string) error

	// Админские операции
	DeleteIdea(db *gorm.DB, adminID, ideaID string) error
	SetPriority(db *gorm.DB, adminID, ideaID string, priority bool) error
}

type IdeaServiceImpl struct {
	ideaRepo repositories.IdeaRepository
	userRepo repositories.UserRepository
}

func NewIdeaService(
	ideaRepo repositories.IdeaRepository,
	userRepo repositories.UserRepository,
) IdeaService {
	return &IdeaServiceImpl{
		ideaRepo: ideaRepo,
		userRepo: userRepo,
	}
}

func (s *IdeaServiceImpl) CreateIdea(db *gorm.DB, authorID string, req *dto.CreateIdeaRequest) (*dto.IdeaResponse, error) {
	author, err := s.userRepo.FindByID(db, authorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	idea := &models.Idea{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		AuthorID:    &author.ID,
		Attachments: strings.Join(req.Attachments, ","),
		// Бейдж на момент подачи дает приоритет сразу
		Priority: author.Badge != "",
	}

	if err := s.ideaRepo.Create(db, idea); err != nil {
		return nil, apperrors.InternalError(err)
	}

	idea.Author = author
	return buildIdeaResponse(idea), nil
}

func (s *IdeaServiceImpl) GetIdea(db *gorm.DB, ideaID string) (*dto.IdeaResponse, error) {
	idea, err := s.ideaRepo.FindByID(db, ideaID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.ErrIdeaNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildIdeaResponse(idea), nil
}

func (s *IdeaServiceImpl) ListIdeas(db *gorm.DB) (*dto.IdeaListResponse, error) {
	ideas, err := s.ideaRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ranked := algorithms.RankIdeas(ideas)
	return buildIdeaListResponse(ranked), nil
}

func (s *IdeaServiceImpl) SearchIdeas(db *gorm.DB, req *dto.SearchIdeasRequest) (*dto.IdeaListResponse, error) {
	ideas, err := s.ideaRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	filtered := algorithms.FilterIdeas(ideas, req.Keyword, req.Tags, req.MinRating)
	return buildIdeaListResponse(filtered), nil
}

// ListMyIdeas - идеи текущего пользователя в порядке подачи, без ранжирования
func (s *IdeaServiceImpl) ListMyIdeas(db *gorm.DB, authorID string) (*dto.IdeaListResponse, error) {
	ideas, err := s.ideaRepo.FindByAuthor(db, authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildIdeaListResponse(ideas), nil
}

func (s *IdeaServiceImpl) Upvote(db *gorm.DB, ideaID string) error {
	if err := s.ideaRepo.IncrementUpvotes(db, ideaID); err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return apperrors.ErrIdeaNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *IdeaServiceImpl) DeleteIdea(db *gorm.DB, adminID, ideaID string) error {
	if err := s.ideaRepo.Delete(db, ideaID); err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return apperrors.ErrIdeaNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.AuditLog(adminID, "delete_idea", ideaID)
	return nil
}

func (s *IdeaServiceImpl) SetPriority(db *gorm.DB, adminID, ideaID string, priority bool) error {
	if err := s.ideaRepo.SetPriority(db, ideaID, priority); err != nil {
		if apperrors.Is(err, repositories.ErrIdeaNotFound) {
			return apperrors.ErrIdeaNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.AuditLog(adminID, "set_priority", ideaID, "priority", priority)
	return nil
}

func buildIdeaResponse(idea *models.Idea) *dto.IdeaResponse {
	resp := &dto.IdeaResponse{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		Tags:        idea.Tags,
		AuthorName:  models.DeletedUserName,
		Priority:    idea.Priority,
		AvgRating:   idea.AvgRating,
		Upvotes:     idea.Upvotes,
		CreatedAt:   idea.CreatedAt,
	}
	if idea.Attachments != "" {
		resp.Attachments = strings.Split(idea.Attachments, ",")
	}
	if idea.AuthorID != nil {
		resp.AuthorID = *idea.AuthorID
	}
	if idea.Author != nil {
		resp.AuthorName = idea.Author.Name
		resp.AuthorBadge = idea.Author.Badge
	}
	return resp
}

func buildIdeaListResponse(ideas []models.Idea) *dto.IdeaListResponse {
	out := make([]*dto.IdeaResponse, 0, len(ideas))
	for i := range ideas {
		out = append(out, buildIdeaResponse(&ideas[i]))
	}
	return &dto.IdeaListResponse{Ideas: out, Total: len(out)}
}
