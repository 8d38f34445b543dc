package assessmentController

import (
	"log"

	"elms/database"
	"elms/middleware"
	"elms/models"
	assessmentModels "elms/models/assessment"
	contentModels "elms/models/content"
	"elms/utils"
	assessmentValidator "elms/validators/assessment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// choiceView is a reader-facing choice. Correctness is only revealed
// to admin readers.
type choiceView struct {
	ID         uint   `json:"id"`
	ChoiceText string `json:"choice_text"`
	OrderIndex int    `json:"order_index"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

type questionView struct {
	ID           uint         `json:"id"`
	QuestionText string       `json:"question_text"`
	QuestionType string       `json:"question_type"`
	Points       float64      `json:"points"`
	OrderIndex   int          `json:"order_index"`
	IsRequired   bool         `json:"is_required"`
	Explanation  string       `json:"explanation,omitempty"`
	Choices      []choiceView `json:"choices"`
}

// CreateQuiz creates a quiz together with its questions and choices in
// one transaction (admin)
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*assessmentValidator.CreateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, reqData.ContentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	quiz := assessmentModels.Quiz{
		Title:            reqData.Title,
		Description:      reqData.Description,
		ContentID:        reqData.ContentID,
		TimeLimitMinutes: reqData.TimeLimitMinutes,
		MaxAttempts:      reqData.MaxAttempts,
		PassingScore:     70,
		IsRandomized:     reqData.IsRandomized,
		CreatedBy:        userID,
	}
	if quiz.MaxAttempts < 1 {
		quiz.MaxAttempts = 1
	}
	if reqData.PassingScore != nil {
		quiz.PassingScore = *reqData.PassingScore
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for _, questionReq := range reqData.Questions {
			question := assessmentModels.Question{
				QuizID:       quiz.ID,
				QuestionText: questionReq.QuestionText,
				QuestionType: questionReq.QuestionType,
				Points:       questionReq.Points,
				OrderIndex:   questionReq.OrderIndex,
				Explanation:  questionReq.Explanation,
				IsRequired:   true,
			}
			if question.Points <= 0 {
				question.Points = 1
			}
			if questionReq.IsRequired != nil {
				question.IsRequired = *questionReq.IsRequired
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for _, choiceReq := range questionReq.Choices {
				choice := assessmentModels.QuestionChoice{
					QuestionID: question.ID,
					ChoiceText: choiceReq.ChoiceText,
					IsCorrect:  choiceReq.IsCorrect,
					OrderIndex: choiceReq.OrderIndex,
				}
				if err := tx.Create(&choice).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully.", fiber.Map{
		"quiz_id":        quiz.ID,
		"title":          quiz.Title,
		"content_id":     quiz.ContentID,
		"question_count": len(reqData.Questions),
		"max_attempts":   quiz.MaxAttempts,
		"passing_score":  quiz.PassingScore,
		"is_published":   quiz.IsPublished,
	})
}

// GetQuizzes lists quizzes with pagination, optionally filtered by content
func GetQuizzes(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&assessmentModels.Quiz{})

	if c.Query("content_id") != "" {
		db = db.Where("content_id = ?", c.QueryInt("content_id"))
	}
	if c.Query("is_published") != "" {
		db = db.Where("is_published = ?", c.QueryBool("is_published"))
	}

	var total int64
	db.Count(&total)

	var quizzes []assessmentModels.Quiz
	if err := db.Offset(offset).Limit(perPage).Order("created_at desc").Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully.", fiber.Map{
		"quizzes":     quizzes,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetQuiz fetches a quiz with its questions and choices. Choice
// correctness and explanations are hidden from non-admin readers.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	db := database.Database.Db

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	showCorrect := false
	var reader models.User
	if err := db.First(&reader, userID).Error; err == nil && reader.Role == "ADMIN" {
		showCorrect = true
	}

	var questions []assessmentModels.Question
	db.Where("quiz_id = ?", quiz.ID).Order("order_index asc").Find(&questions)

	questionViews := make([]questionView, len(questions))
	for i, question := range questions {
		view := questionView{
			ID:           question.ID,
			QuestionText: question.QuestionText,
			QuestionType: question.QuestionType,
			Points:       question.Points,
			OrderIndex:   question.OrderIndex,
			IsRequired:   question.IsRequired,
		}
		if showCorrect {
			view.Explanation = question.Explanation
		}

		var choices []assessmentModels.QuestionChoice
		db.Where("question_id = ?", question.ID).Order("order_index asc").Find(&choices)

		view.Choices = make([]choiceView, len(choices))
		for j, choice := range choices {
			view.Choices[j] = choiceView{
				ID:         choice.ID,
				ChoiceText: choice.ChoiceText,
				OrderIndex: choice.OrderIndex,
			}
			if showCorrect {
				isCorrect := choice.IsCorrect
				view.Choices[j].IsCorrect = &isCorrect
			}
		}
		questionViews[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", fiber.Map{
		"quiz":      quiz,
		"questions": questionViews,
	})
}

// UpdateQuiz applies a partial update to quiz settings (admin)
func UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	reqData := new(struct {
		Title            *string  `json:"title"`
		Description      *string  `json:"description"`
		TimeLimitMinutes *int     `json:"time_limit_minutes"`
		MaxAttempts      *int     `json:"max_attempts"`
		PassingScore     *float64 `json:"passing_score"`
		IsRandomized     *bool    `json:"is_randomized"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if reqData.Title != nil {
		quiz.Title = *reqData.Title
	}
	if reqData.Description != nil {
		quiz.Description = *reqData.Description
	}
	if reqData.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = reqData.TimeLimitMinutes
	}
	if reqData.MaxAttempts != nil && *reqData.MaxAttempts > 0 {
		quiz.MaxAttempts = *reqData.MaxAttempts
	}
	if reqData.PassingScore != nil {
		quiz.PassingScore = *reqData.PassingScore
	}
	if reqData.IsRandomized != nil {
		quiz.IsRandomized = *reqData.IsRandomized
	}

	if err := db.Save(&quiz).Error; err != nil {
		log.Printf("Error updating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully.", quiz)
}

// DeleteQuiz removes a quiz and everything hanging off it (admin)
func DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	db := database.Database.Db

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&assessmentModels.Question{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		var attemptIDs []uint
		if err := tx.Model(&assessmentModels.QuizAttempt{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &attemptIDs).Error; err != nil {
			return err
		}

		if len(attemptIDs) > 0 {
			if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&assessmentModels.QuizAnswer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&assessmentModels.QuizAttempt{}).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&assessmentModels.QuestionChoice{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&assessmentModels.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		log.Printf("Error deleting quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully.", nil)
}

// PublishQuiz makes a quiz visible and startable by learners (admin)
func PublishQuiz(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	db := database.Database.Db

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz.IsPublished = true
	if err := db.Save(&quiz).Error; err != nil {
		log.Printf("Error publishing quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully.", quiz)
}
