package middleware

import (
	"net/http"
	"strings"

	"ideahub_backend/internal/auth"
	"ideahub_backend/internal/logger"
	"ideahub_backend/internal/repositories"
	"ideahub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Репозиторий без состояния, можно держать один на пакет
var sessionRepo = repositories.NewSessionRepository()

// sessionAlive проверяет, что серверная сессия из токена все еще существует.
// Logout и смена пароля удаляют строки сессий - подписанный JWT
// сам по себе доступа не дает.
func sessionAlive(c *gin.Context, claims *auth.Claims) bool {
	if claims.SessionToken == "" {
		return false
	}

	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return false
	}
	db, ok := val.(*gorm.DB)
	if !ok {
		return false
	}

	session, err := sessionRepo.FindByToken(db, claims.SessionToken)
	if err != nil {
		return false
	}
	return session.UserID == claims.UserID
}

// AuthMiddleware - middleware проверки JWT.
// Неавторизованный запрос получает явный отказ, а не молчаливый пропуск.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil || !auth.IsAuthenticated(claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if !sessionAlive(c, claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or logged out"})
			return
		}

		// Сохраняем claims в контекст
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// AdminMiddleware - доступ только для администраторов.
// Вешается после AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, exists := c.Get("claims")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not permitted"})
			return
		}

		claims, ok := claimsVal.(*auth.Claims)
		if !ok || !auth.IsAdmin(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not permitted"})
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware подхватывает пользователя, если токен есть,
// но не требует его. Используется для анонимных действий (апвоут).
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := auth.ParseToken(tokenStr); err == nil && sessionAlive(c, claims) {
				c.Set("userID", claims.UserID)
				c.Set("isAdmin", claims.IsAdmin)
			}
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

// IsAdmin извлекает флаг администратора из контекста
func IsAdmin(c *gin.Context) bool {
	isAdminVal, exists := c.Get("isAdmin")
	if !exists {
		return false
	}

	isAdmin, ok := isAdminVal.(bool)
	return ok && isAdmin
}
