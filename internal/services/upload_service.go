package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"ideahub_backend/internal/models"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/internal/storage"
	"ideahub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadConfig - ограничения на загружаемые файлы
type UploadConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

type UploadService interface {
	// Store кладет файл в blob store и возвращает opaque handle,
	// который вызывающий сохраняет comma-joined у себя.
	Store(db *gorm.DB, userID, originalName, contentType string, data []byte) (string, error)
	Open(db *gorm.DB, handle string) (*models.Upload, error)
	ListMine(db *gorm.DB, userID string) ([]models.Upload, error)
}

type UploadServiceImpl struct {
	uploadRepo repositories.UploadRepository
	storage    storage.Storage
	config     UploadConfig
}

func NewUploadService(uploadRepo repositories.UploadRepository, st storage.Storage, cfg UploadConfig) UploadService {
	return &UploadServiceImpl{
		uploadRepo: uploadRepo,
		storage:    st,
		config:     cfg,
	}
}

func (s *UploadServiceImpl) Store(db *gorm.DB, userID, originalName, contentType string, data []byte) (string, error) {
	if s.config.MaxSize > 0 && int64(len(data)) > s.config.MaxSize {
		return "", apperrors.NewBadRequestError("File too large")
	}
	if len(s.config.AllowedTypes) > 0 && !s.typeAllowed(contentType) {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("File type %s is not allowed", contentType))
	}

	// Handle: дата + uuid + исходное расширение. Непрозрачен для вызывающих.
	ext := filepath.Ext(originalName)
	handle := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)

	if err := s.storage.Save(context.Background(), handle, bytes.NewReader(data), contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	upload := &models.Upload{
		UserID:       userID,
		Path:         handle,
		OriginalName: originalName,
		MimeType:     contentType,
		Size:         int64(len(data)),
	}
	if err := s.uploadRepo.Create(db, upload); err != nil {
		// Файл уже лежит в сторадже; запись не прошла - подчищаем
		_ = s.storage.Delete(context.Background(), handle)
		return "", apperrors.InternalError(err)
	}

	return handle, nil
}

func (s *UploadServiceImpl) Open(db *gorm.DB, handle string) (*models.Upload, error) {
	upload, err := s.uploadRepo.FindByPath(db, handle)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUploadNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Запись может пережить сам файл (ручная чистка каталога)
	exists, err := s.storage.Exists(context.Background(), upload.Path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !exists {
		return nil, apperrors.ErrFileNotFound
	}

	return upload, nil
}

func (s *UploadServiceImpl) ListMine(db *gorm.DB, userID string) ([]models.Upload, error) {
	uploads, err := s.uploadRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return uploads, nil
}

func (s *UploadServiceImpl) typeAllowed(contentType string) bool {
	for _, t := range s.config.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
