package dto

import "time"

// ======================
// Request DTOs
// ======================

type CreateIdeaRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=10000"`
	Tags        string   `json:"tags" validate:"omitempty,tags_csv"`
	Attachments []string `json:"attachments" validate:"omitempty,max=10"`
}

// SearchIdeasRequest - параметры фильтра из query string.
type SearchIdeasRequest struct {
	Keyword   string  `form:"keyword"`
	Tags      string  `form:"tags"`
	MinRating float64 `form:"min_rating" validate:"omitempty,min=0,max=5"`
}

type SetPriorityRequest struct {
	Priority bool `json:"priority"`
}

// ======================
// Response DTOs
// ======================

type IdeaResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags,omitempty"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorName  string    `json:"author_name"` // "deleted user" если автор удален
	AuthorBadge string    `json:"author_badge,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
	Priority    bool      `json:"priority"`
	AvgRating   float64   `json:"avg_rating"`
	Upvotes     int       `json:"upvotes"`
	CreatedAt   time.Time `json:"created_at"`
}

type IdeaListResponse struct {
	Ideas []*IdeaResponse `json:"ideas"`
	Total int             `json:"total"`
}
