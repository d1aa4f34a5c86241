package dto

import "time"

// ======================
// Request DTOs
// ======================

type SubmitVerificationRequest struct {
	Claim   string   `json:"claim" validate:"required,max=200"`
	Details string   `json:"details" validate:"omitempty,max=5000"`
	Proofs  []string `json:"proofs" validate:"omitempty,max=10"`
}

type ResolveVerificationRequest struct {
	AdminNote string `json:"admin_note" validate:"omitempty,max=2000"`
}

// ======================
// Response DTOs
// ======================

type VerificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Claim     string    `json:"claim"`
	Details   string    `json:"details,omitempty"`
	Proofs    []string  `json:"proofs,omitempty"`
	Status    string    `json:"status"`
	AdminNote string    `json:"admin_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type VerificationListResponse struct {
	Requests []*VerificationResponse `json:"requests"`
	Total    int                     `json:"total"`
}
