package models

type Idea struct {
	BaseModel
	Title       string  `gorm:"not null"`
	Description string  `gorm:"not null"`
	Tags        string  // comma-delimited, порядок не важен
	AuthorID    *string `gorm:"index"` // nullable: при удалении автора идея остается
	Attachments string  // comma-joined handles из blob store
	Priority    bool    `gorm:"default:false"`
	AvgRating   float64 `gorm:"default:0"` // derived: среднее по всем Review.Rating
	Upvotes     int     `gorm:"default:0"`

	// Relations
	Author  *User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Reviews []Review `gorm:"foreignKey:IdeaID"`
}

type Review struct {
	BaseModel
	IdeaID     string `gorm:"not null;index"`
	ReviewerID string `gorm:"not null;index"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
}
