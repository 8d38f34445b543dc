package assessment

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission statuses
const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
)

// Assessment is a manually graded evaluation (exam, assignment, project)
type Assessment struct {
	gorm.Model
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	AssessmentType string     `json:"assessment_type" gorm:"not null"` // quiz, exam, assignment, project
	ContentID      *uint      `json:"content_id" gorm:"index"`
	DueDate        *time.Time `json:"due_date"`
	TotalPoints    float64    `json:"total_points" gorm:"not null"`
	PassingScore   float64    `json:"passing_score" gorm:"default:70"`
	IsPublished    bool       `json:"is_published" gorm:"default:false"`
	CreatedBy      uint       `json:"created_by" gorm:"index"`
}

// AssessmentSubmission holds one user's submission for an assessment
type AssessmentSubmission struct {
	gorm.Model
	AssessmentID   uint           `json:"assessment_id" gorm:"index;not null"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	SubmissionData datatypes.JSON `json:"submission_data"`
	FilePath       string         `json:"file_path"`
	Score          *float64       `json:"score"`
	Feedback       string         `json:"feedback" gorm:"type:text"`
	GradedBy       *uint          `json:"graded_by"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	GradedAt       *time.Time     `json:"graded_at"`
	Status         string         `json:"status" gorm:"default:'submitted'"` // submitted, graded
}
