package content

import "gorm.io/gorm"

// Content represents a learning content item
type Content struct {
	gorm.Model
	Title           string `json:"title" gorm:"not null"`
	Description     string `json:"description"`
	CategoryID      *uint  `json:"category_id" gorm:"index"`
	ContentType     string `json:"content_type" gorm:"not null"` // video, document, quiz, ...
	FilePath        string `json:"file_path"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	CreatedBy       uint   `json:"created_by" gorm:"index"`
}
