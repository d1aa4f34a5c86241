package routes

import (
	"net/http"

	"ideahub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes вешает все маршруты приложения на engine
func RegisterRoutes(engine *gin.Engine, h *handlers.AppHandlers) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.Idea.RegisterRoutes(api)
	h.Verification.RegisterRoutes(api)
	h.File.RegisterRoutes(api)
}
