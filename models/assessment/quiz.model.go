package assessment

import "gorm.io/gorm"

// Question types
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Quiz represents an auto-graded quiz attached to a content
type Quiz struct {
	gorm.Model
	Title            string  `json:"title" gorm:"not null"`
	Description      string  `json:"description"`
	ContentID        uint    `json:"content_id" gorm:"index;not null"`
	TimeLimitMinutes *int    `json:"time_limit_minutes"`
	MaxAttempts      int     `json:"max_attempts" gorm:"default:1"`
	PassingScore     float64 `json:"passing_score" gorm:"default:70"` // percentage
	IsRandomized     bool    `json:"is_randomized" gorm:"default:false"`
	IsPublished      bool    `json:"is_published" gorm:"default:false"`
	CreatedBy        uint    `json:"created_by" gorm:"index"`
}

// Question belongs to exactly one quiz
type Question struct {
	gorm.Model
	QuizID       uint    `json:"quiz_id" gorm:"index;not null"`
	QuestionText string  `json:"question_text" gorm:"type:text;not null"`
	QuestionType string  `json:"question_type" gorm:"not null"` // multiple_choice, true_false, short_answer
	Points       float64 `json:"points" gorm:"default:1"`
	OrderIndex   int     `json:"order_index" gorm:"default:0"`
	Explanation  string  `json:"explanation" gorm:"type:text"`
	IsRequired   bool    `json:"is_required" gorm:"default:true"`
}

// QuestionChoice belongs to exactly one question
type QuestionChoice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	ChoiceText string `json:"choice_text" gorm:"type:text;not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
}
