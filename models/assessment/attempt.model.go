package assessment

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt statuses
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// QuizAttempt is one instance of a user taking a quiz
type QuizAttempt struct {
	gorm.Model
	QuizID           uint       `json:"quiz_id" gorm:"index;not null"`
	UserID           uint       `json:"user_id" gorm:"index;not null"`
	AttemptNumber    int        `json:"attempt_number" gorm:"default:1"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentMinutes int        `json:"time_spent_minutes" gorm:"default:0"`
	Score            *float64   `json:"score"`                // percentage, nil until completed
	MaxScore         float64    `json:"max_score"`            // question points snapshotted at start
	IsPassed         bool       `json:"is_passed" gorm:"default:false"`
	Status           string     `json:"status" gorm:"default:'in_progress'"` // in_progress, completed, abandoned
}

// QuizAnswer is one answer row created during attempt submission, never mutated after
type QuizAnswer struct {
	gorm.Model
	AttemptID       uint           `json:"attempt_id" gorm:"index;not null"`
	QuestionID      uint           `json:"question_id" gorm:"index;not null"`
	SelectedChoices datatypes.JSON `json:"selected_choices"` // JSON array of choice IDs
	TextAnswer      string         `json:"text_answer" gorm:"type:text"`
	IsCorrect       *bool          `json:"is_correct"` // nil for short answers, never auto-graded
	PointsEarned    float64        `json:"points_earned" gorm:"default:0"`
	AnsweredAt      time.Time      `json:"answered_at"`
}
