package models

import "time"

type User struct {
	BaseModel
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Bio          string
	IsAdmin      bool   `gorm:"default:false"`
	Badge        string // пустая строка = бейджа нет; выдается только через одобрение верификации

	// Relations
	Sessions []Session `gorm:"foreignKey:UserID"`
}

// Session - серверная сессия, привязывающая текущего пользователя к запросам.
// Logout удаляет строку; кэшируем is_admin, чтобы не ходить за юзером на каждый запрос.
type Session struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	IsAdmin   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null"`
}
