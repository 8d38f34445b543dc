package learning

import (
	"time"

	"gorm.io/gorm"
)

// LearningAssignment assigns a content to a user
type LearningAssignment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	ContentID   uint       `json:"content_id" gorm:"index;not null"`
	AssignedBy  uint       `json:"assigned_by" gorm:"not null"`
	AssignedAt  time.Time  `json:"assigned_at"`
	DueDate     *time.Time `json:"due_date"`
	IsMandatory bool       `json:"is_mandatory" gorm:"default:false"`
	Notes       string     `json:"notes"`
}
