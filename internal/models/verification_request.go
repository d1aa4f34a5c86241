package models

type VerificationRequest struct {
	BaseModel
	UserID string `gorm:"not null;index"`
	Claim  string `gorm:"not null"`
	Details string
	Proofs    string             // comma-joined handles из blob store
	Status    VerificationStatus `gorm:"type:varchar(20);default:'pending';index"`
	AdminNote string

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}

// IsResolved - заявка уже рассмотрена; повторное рассмотрение не поддерживается.
func (r *VerificationRequest) IsResolved() bool {
	return r.Status != VerificationStatusPending
}
