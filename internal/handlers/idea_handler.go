package handlers

import (
	"net/http"

	"ideahub_backend/internal/middleware"
	"ideahub_backend/internal/services"
	"ideahub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	*BaseHandler
	ideaService   services.IdeaService
	reviewService services.ReviewService
}

func NewIdeaHandler(base *BaseHandler, ideaService services.IdeaService, reviewService services.ReviewService) *IdeaHandler {
	return &IdeaHandler{
		BaseHandler:   base,
		ideaService:   ideaService,
		reviewService: reviewService,
	}
}

func (h *IdeaHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	public := r.Group("/ideas")
	{
		public.GET("", h.ListIdeas)
		public.GET("/search", h.SearchIdeas)
		public.GET("/:ideaId", h.GetIdea)
		public.GET("/:ideaId/reviews", h.ListReviews)
		// Апвоут без авторизации - поведение исходной системы сохранено
		public.POST("/:ideaId/upvote", middleware.OptionalAuthMiddleware(), h.Upvote)
	}

	// Protected routes
	ideas := r.Group("/ideas")
	ideas.Use(middleware.AuthMiddleware())
	{
		ideas.POST("", h.CreateIdea)
		ideas.GET("/mine", h.MyIdeas)
		ideas.POST("/:ideaId/reviews", h.CreateReview)
	}

	// Admin routes
	admin := r.Group("/admin/ideas")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.DELETE("/:ideaId", h.DeleteIdea)
		admin.PUT("/:ideaId/priority", h.SetPriority)
	}
}

// --- Public handlers ---

func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	resp, err := h.ideaService.ListIdeas(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IdeaHandler) SearchIdeas(c *gin.Context) {
	var req dto.SearchIdeasRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.ideaService.SearchIdeas(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IdeaHandler) GetIdea(c *gin.Context) {
	idea, err := h.ideaService.GetIdea(h.GetDB(c), c.Param("ideaId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) Upvote(c *gin.Context) {
	if err := h.ideaService.Upvote(h.GetDB(c), c.Param("ideaId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "upvoted"})
}

func (h *IdeaHandler) ListReviews(c *gin.Context) {
	resp, err := h.reviewService.ListByIdea(h.GetDB(c), c.Param("ideaId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// --- Protected handlers ---

func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var req dto.CreateIdeaRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	idea, err := h.ideaService.CreateIdea(h.GetDB(c), middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idea)
}

func (h *IdeaHandler) MyIdeas(c *gin.Context) {
	resp, err := h.ideaService.ListMyIdeas(h.GetDB(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *IdeaHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), middleware.GetUserID(c), c.Param("ideaId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// --- Admin handlers ---

func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	if err := h.ideaService.DeleteIdea(h.GetDB(c), middleware.GetUserID(c), c.Param("ideaId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "idea deleted"})
}

func (h *IdeaHandler) SetPriority(c *gin.Context) {
	var req dto.SetPriorityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.ideaService.SetPriority(h.GetDB(c), middleware.GetUserID(c), c.Param("ideaId"), req.Priority)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "priority updated"})
}
