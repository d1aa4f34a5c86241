package handlers

import (
	"net/http"

	"ideahub_backend/internal/middleware"
	"ideahub_backend/internal/services"
	"ideahub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	{
		verification.POST("", h.Submit)
		verification.GET("/my", h.MyRequests)
	}

	admin := r.Group("/admin/verification")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/pending", h.ListPending)
		admin.PUT("/:requestId/approve", h.Approve)
		admin.PUT("/:requestId/reject", h.Reject)
	}
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	var req dto.SubmitVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.SubmitRequest(h.GetDB(c), middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *VerificationHandler) MyRequests(c *gin.Context) {
	resp, err := h.verificationService.MyRequests(h.GetDB(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) ListPending(c *gin.Context) {
	resp, err := h.verificationService.ListPending(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	var req dto.ResolveVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Approve(h.GetDB(c), middleware.GetUserID(c), c.Param("requestId"), req.AdminNote)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	var req dto.ResolveVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Reject(h.GetDB(c), middleware.GetUserID(c), c.Param("requestId"), req.AdminNote)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
