package models

import "gorm.io/datatypes"

// Upload - учетная запись файла в blob store. Path является opaque handle,
// который хранится comma-joined на Idea.Attachments и VerificationRequest.Proofs.
type Upload struct {
	BaseModel
	UserID       string `gorm:"index"` // пусто для анонимных загрузок не бывает: загрузка требует логина
	Path         string `gorm:"not null;uniqueIndex"`
	OriginalName string `gorm:"column:original_name"`
	MimeType     string
	Size         int64
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
}
