package learning

import (
	"time"

	"gorm.io/gorm"
)

// LearningProgress tracks one user's progress on one content.
// Upserted on every progress report; completion is a one-way latch.
type LearningProgress struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"index;not null"`
	ContentID          uint       `json:"content_id" gorm:"index;not null"`
	ProgressPercentage float64    `json:"progress_percentage" gorm:"default:0"`
	TimeSpentMinutes   int        `json:"time_spent_minutes" gorm:"default:0"`
	IsCompleted        bool       `json:"is_completed" gorm:"default:false"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	LastAccessedAt     time.Time  `json:"last_accessed_at"`
}
