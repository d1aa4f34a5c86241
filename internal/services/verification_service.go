package services

import (
	"strings"

	"ideahub_backend/internal/email"
	"ideahub_backend/internal/logger"
	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/services/dto"
	"ideahub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type VerificationService interface {
	SubmitRequest(db *gorm.DB, userID string, req *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error)
	MyRequests(db *gorm.DB, userID string) (*dto.VerificationListResponse, error)

	// Админские операции
	ListPending(db *gorm.DB) (*dto.VerificationListResponse, error)
	Approve(db *gorm.DB, adminID, requestID, adminNote string) (*dto.VerificationResponse, error)
	Reject(db *gorm.DB, adminID, requestID, adminNote string) (*dto.VerificationResponse, error)
}

type VerificationServiceImpl struct {
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	ideaRepo         repositories.IdeaRepository
	emailProvider    email.Provider
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	ideaRepo repositories.IdeaRepository,
	emailProvider email.Provider,
) VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		ideaRepo:         ideaRepo,
		emailProvider:    emailProvider,
	}
}

func (s *VerificationServiceImpl) SubmitRequest(db *gorm.DB, userID string, req *dto.SubmitVerificationRequest) (*dto.VerificationResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Пользователь может подавать заявки сколько угодно раз;
	// каждая живет независимо от предыдущих
	request := &models.VerificationRequest{
		UserID:  userID,
		Claim:   req.Claim,
		Details: req.Details,
		Proofs:  strings.Join(req.Proofs, ","),
		Status:  models.VerificationStatusPending,
	}

	if err := s.verificationRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildVerificationResponse(request), nil
}

func (s *VerificationServiceImpl) MyRequests(db *gorm.DB, userID string) (*dto.VerificationListResponse, error) {
	requests, err := s.verificationRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildVerificationListResponse(requests), nil
}

func (s *VerificationServiceImpl) ListPending(db *gorm.DB) (*dto.VerificationListResponse, error) {
	requests, err := s.verificationRepo.FindByStatus(db, models.VerificationStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildVerificationListResponse(requests), nil
}

// Approve одобряет pending-заявку. Три мутации - статус заявки, бейдж
// пользователя и priority на всех его идеях (включая созданные до заявки) -
// коммитятся одной транзакцией: либо применяется все, либо ничего.
func (s *VerificationServiceImpl) Approve(db *gorm.DB, adminID, requestID, adminNote string) (*dto.VerificationResponse, error) {
	request, err := s.loadPending(db, requestID)
	if err != nil {
		return nil, err
	}

	badge := request.Claim + models.BadgeSuffix

	err = db.Transaction(func(tx *gorm.DB) error {
		request.Status = models.VerificationStatusApproved
		request.AdminNote = adminNote
		if err := s.verificationRepo.Update(tx, request); err != nil {
			return err
		}

		// Claim записывается в бейдж как есть; повторное одобрение того же
		// claim дает ту же строку бейджа
		if err := s.userRepo.UpdateBadge(tx, request.UserID, badge); err != nil {
			return err
		}

		// Ретроактивное продвижение: все существующие идеи автора
		return s.ideaRepo.PromoteAllByAuthor(tx, request.UserID)
	})
	if err != nil {
		return nil, apperrors.TransactionFailure(err)
	}

	logger.AuditLog(adminID, "approve_verification", requestID, "user_id", request.UserID)
	s.notifyDecision(request, true, adminNote)

	return buildVerificationResponse(request), nil
}

// Reject отклоняет pending-заявку. Никаких побочных эффектов: ранее выданный
// бейдж и priority идей не трогаются.
func (s *VerificationServiceImpl) Reject(db *gorm.DB, adminID, requestID, adminNote string) (*dto.VerificationResponse, error) {
	request, err := s.loadPending(db, requestID)
	if err != nil {
		return nil, err
	}

	request.Status = models.VerificationStatusRejected
	request.AdminNote = adminNote
	if err := s.verificationRepo.Update(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.AuditLog(adminID, "reject_verification", requestID, "user_id", request.UserID)
	s.notifyDecision(request, false, adminNote)

	return buildVerificationResponse(request), nil
}

// loadPending возвращает заявку, если она еще не рассмотрена.
// Статусы approved/rejected терминальны: повторное рассмотрение - ошибка.
func (s *VerificationServiceImpl) loadPending(db *gorm.DB, requestID string) (*models.VerificationRequest, error) {
	request, err := s.verificationRepo.FindByID(db, requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if request.IsResolved() {
		return nil, apperrors.ErrRequestAlreadyResolved
	}
	return request, nil
}

func (s *VerificationServiceImpl) notifyDecision(request *models.VerificationRequest, approved bool, note string) {
	if request.User == nil {
		return
	}
	if err := s.emailProvider.SendVerificationDecision(request.User.Email, request.Claim, approved, note); err != nil {
		logger.Warn("failed to send verification decision email",
			"user_id", request.UserID, "error", err)
	}
}

func buildVerificationResponse(request *models.VerificationRequest) *dto.VerificationResponse {
	resp := &dto.VerificationResponse{
		ID:        request.ID,
		UserID:    request.UserID,
		Claim:     request.Claim,
		Details:   request.Details,
		Status:    string(request.Status),
		AdminNote: request.AdminNote,
		CreatedAt: request.CreatedAt,
	}
	if request.Proofs != "" {
		resp.Proofs = strings.Split(request.Proofs, ",")
	}
	if request.User != nil {
		resp.UserName = request.User.Name
		resp.UserEmail = request.User.Email
	}
	return resp
}

func buildVerificationListResponse(requests []models.VerificationRequest) *dto.VerificationListResponse {
	out := make([]*dto.VerificationResponse, 0, len(requests))
	for i := range requests {
		out = append(out, buildVerificationResponse(&requests[i]))
	}
	return &dto.VerificationListResponse{Requests: out, Total: len(out)}
}
