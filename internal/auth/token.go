package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims - полезная нагрузка access-токена.
// IsAdmin кэшируется на время жизни токена, чтобы не читать юзера на каждом запросе.
// SessionToken привязывает JWT к серверной сессии: после логаута
// или смены пароля строка сессии удаляется и токен перестает работать.
type Claims struct {
	UserID       string `json:"user_id"`
	IsAdmin      bool   `json:"is_admin"`
	SessionToken string `json:"session_token"`
	jwt.RegisteredClaims
}

var (
	jwtSecret []byte
	tokenTTL  = time.Hour
)

// Configure задает секрет и TTL токенов. Вызывается один раз при старте из app.
func Configure(secret string, ttlMinutes int) {
	jwtSecret = []byte(secret)
	if ttlMinutes > 0 {
		tokenTTL = time.Duration(ttlMinutes) * time.Minute
	}
}

// GenerateToken выпускает подписанный access-токен для пользователя
func GenerateToken(userID string, isAdmin bool, sessionToken string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:       userID,
		IsAdmin:      isAdmin,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
