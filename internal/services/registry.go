package services

import "ideahub_backend/internal/email"

// ServiceContainer - контейнер всех сервисов, собирается в app
type ServiceContainer struct {
	AuthService         AuthService
	IdeaService         IdeaService
	ReviewService       ReviewService
	VerificationService VerificationService
	UploadService       UploadService
	EmailProvider       email.Provider
}
