package handlers

// AppHandlers - все HTTP-обработчики приложения
type AppHandlers struct {
	Auth         *AuthHandler
	Idea         *IdeaHandler
	Verification *VerificationHandler
	File         *FileHandler
}
