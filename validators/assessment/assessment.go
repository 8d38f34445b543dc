package assessmentValidator

import (
	"elms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateChoiceRequest is one authored choice inside a question
type CreateChoiceRequest struct {
	ChoiceText string `json:"choice_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
	OrderIndex int    `json:"order_index"`
}

// CreateQuestionRequest is one authored question inside a quiz
type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text" validate:"required"`
	QuestionType string                `json:"question_type" validate:"required,oneof=multiple_choice true_false short_answer"`
	Points       float64               `json:"points" validate:"omitempty,gt=0"`
	OrderIndex   int                   `json:"order_index"`
	Explanation  string                `json:"explanation"`
	IsRequired   *bool                 `json:"is_required"`
	Choices      []CreateChoiceRequest `json:"choices" validate:"dive"`
}

// CreateQuizRequest is the full quiz authoring payload
type CreateQuizRequest struct {
	Title            string                  `json:"title" validate:"required,min=3"`
	Description      string                  `json:"description"`
	ContentID        uint                    `json:"content_id" validate:"required"`
	TimeLimitMinutes *int                    `json:"time_limit_minutes" validate:"omitempty,gt=0"`
	MaxAttempts      int                     `json:"max_attempts" validate:"omitempty,gt=0"`
	PassingScore     *float64                `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
	IsRandomized     bool                    `json:"is_randomized"`
	Questions        []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// CreateQuiz validates the nested quiz authoring payload
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// CreateAssessmentRequest is the assessment authoring payload
type CreateAssessmentRequest struct {
	Title          string   `json:"title" validate:"required,min=3"`
	Description    string   `json:"description"`
	AssessmentType string   `json:"assessment_type" validate:"required,oneof=quiz exam assignment project"`
	ContentID      *uint    `json:"content_id"`
	DueDate        *string  `json:"due_date"`
	TotalPoints    float64  `json:"total_points" validate:"required,gt=0"`
	PassingScore   *float64 `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
}

// CreateAssessment validates the assessment authoring payload
func CreateAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssessmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}
