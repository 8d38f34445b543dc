package assessmentController

import (
	"encoding/json"
	"log"
	"time"

	"elms/database"
	"elms/middleware"
	assessmentModels "elms/models/assessment"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// submittedAnswer is one answer in the submission payload
type submittedAnswer struct {
	QuestionID        uint   `json:"question_id"`
	SelectedChoiceIDs []uint `json:"selected_choice_ids"`
	TextAnswer        string `json:"text_answer"`
}

// StartAttempt opens a new attempt on a published quiz. The failure
// reason is deliberately not distinguished in the response.
func StartAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	db := database.Database.Db

	cannotStart := func() error {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Cannot start quiz attempt. Quiz may not be published or attempt limit reached.", nil)
	}

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil || !quiz.IsPublished {
		return cannotStart()
	}

	var priorAttempts int64
	db.Model(&assessmentModels.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quiz.ID, userID).
		Count(&priorAttempts)
	if priorAttempts >= int64(quiz.MaxAttempts) {
		return cannotStart()
	}

	var maxScore float64
	db.Model(&assessmentModels.Question{}).
		Where("quiz_id = ?", quiz.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&maxScore)

	attempt := assessmentModels.QuizAttempt{
		QuizID:        quiz.ID,
		UserID:        userID,
		AttemptNumber: int(priorAttempts) + 1,
		StartedAt:     time.Now(),
		MaxScore:      maxScore,
		Status:        assessmentModels.StatusInProgress,
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error starting quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz attempt started.", fiber.Map{
		"attempt_id":         attempt.ID,
		"quiz_id":            attempt.QuizID,
		"attempt_number":     attempt.AttemptNumber,
		"started_at":         attempt.StartedAt,
		"max_score":          attempt.MaxScore,
		"time_limit_minutes": quiz.TimeLimitMinutes,
		"status":             attempt.Status,
	})
}

// SubmitAttempt grades and finalizes an in-progress attempt. Answers
// referencing unknown questions are skipped. Short answers are stored
// ungraded with nil correctness and zero points.
func SubmitAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt ID!", nil)
	}

	reqData := new(struct {
		Answers []submittedAnswer `json:"answers"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	cannotSubmit := func() error {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Cannot submit quiz attempt. Attempt may not exist or already completed.", nil)
	}

	var attempt assessmentModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ?", attemptID, userID).First(&attempt).Error; err != nil {
		return cannotSubmit()
	}
	if attempt.Status != assessmentModels.StatusInProgress {
		return cannotSubmit()
	}

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, attempt.QuizID).Error; err != nil {
		return cannotSubmit()
	}

	var questions []assessmentModels.Question
	db.Where("quiz_id = ?", quiz.ID).Find(&questions)

	questionByID := make(map[uint]assessmentModels.Question, len(questions))
	for _, question := range questions {
		questionByID[question.ID] = question
	}

	now := time.Now()
	totalEarned := 0.0
	answerRows := make([]assessmentModels.QuizAnswer, 0, len(reqData.Answers))

	for _, answer := range reqData.Answers {
		question, known := questionByID[answer.QuestionID]
		if !known {
			continue
		}

		row := assessmentModels.QuizAnswer{
			AttemptID:  attempt.ID,
			QuestionID: question.ID,
			TextAnswer: answer.TextAnswer,
			AnsweredAt: now,
		}

		selected, err := json.Marshal(answer.SelectedChoiceIDs)
		if err == nil {
			row.SelectedChoices = datatypes.JSON(selected)
		}

		switch question.QuestionType {
		case assessmentModels.TypeMultipleChoice:
			correct := gradeMultipleChoice(db, question.ID, answer.SelectedChoiceIDs)
			row.IsCorrect = &correct
			if correct {
				row.PointsEarned = question.Points
			}
		case assessmentModels.TypeTrueFalse:
			correct := gradeTrueFalse(db, question.ID, answer.SelectedChoiceIDs)
			row.IsCorrect = &correct
			if correct {
				row.PointsEarned = question.Points
			}
		case assessmentModels.TypeShortAnswer:
			// Manual grading only. Correctness stays unset.
		}

		totalEarned += row.PointsEarned
		answerRows = append(answerRows, row)
	}

	score := 0.0
	if attempt.MaxScore > 0 {
		score = totalEarned / attempt.MaxScore * 100
	}

	attempt.Score = &score
	attempt.IsPassed = score >= quiz.PassingScore
	attempt.CompletedAt = &now
	attempt.TimeSpentMinutes = int(now.Sub(attempt.StartedAt).Minutes())
	attempt.Status = assessmentModels.StatusCompleted

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range answerRows {
			if err := tx.Create(&answerRows[i]).Error; err != nil {
				return err
			}
		}
		return tx.Save(&attempt).Error
	})
	if err != nil {
		log.Printf("Error submitting quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempt submitted.", fiber.Map{
		"attempt_id":         attempt.ID,
		"quiz_id":            attempt.QuizID,
		"attempt_number":     attempt.AttemptNumber,
		"score":              score,
		"max_score":          attempt.MaxScore,
		"is_passed":          attempt.IsPassed,
		"time_spent_minutes": attempt.TimeSpentMinutes,
		"status":             attempt.Status,
	})
}

// gradeMultipleChoice awards credit only when the set of selected choice
// IDs exactly matches the correct ones. Duplicate selections collapse into
// the set; there is no partial credit.
func gradeMultipleChoice(db *gorm.DB, questionID uint, selectedIDs []uint) bool {
	var correctIDs []uint
	db.Model(&assessmentModels.QuestionChoice{}).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Pluck("id", &correctIDs)

	selectedSet := make(map[uint]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selectedSet[id] = struct{}{}
	}
	if len(selectedSet) != len(correctIDs) {
		return false
	}
	for _, id := range correctIDs {
		if _, ok := selectedSet[id]; !ok {
			return false
		}
	}
	return true
}

// gradeTrueFalse awards credit when exactly one choice was selected
// and that choice is the correct one
func gradeTrueFalse(db *gorm.DB, questionID uint, selectedIDs []uint) bool {
	if len(selectedIDs) != 1 {
		return false
	}

	var choice assessmentModels.QuestionChoice
	if err := db.Where("id = ? AND question_id = ?", selectedIDs[0], questionID).First(&choice).Error; err != nil {
		return false
	}
	return choice.IsCorrect
}

// GetMyAttempts lists the caller's attempts, newest first. Answers are
// not included in the list view.
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&assessmentModels.QuizAttempt{}).Where("user_id = ?", userID)

	if c.Query("quiz_id") != "" {
		db = db.Where("quiz_id = ?", c.QueryInt("quiz_id"))
	}

	var total int64
	db.Count(&total)

	var attempts []assessmentModels.QuizAttempt
	if err := db.Offset(offset).Limit(perPage).Order("started_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully.", fiber.Map{
		"attempts":    attempts,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetAttempt fetches one of the caller's attempts with its answer rows
func GetAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt ID!", nil)
	}

	db := database.Database.Db

	var attempt assessmentModels.QuizAttempt
	if err := db.Where("id = ? AND user_id = ?", attemptID, userID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var answers []assessmentModels.QuizAnswer
	db.Where("attempt_id = ?", attempt.ID).Order("answered_at asc").Find(&answers)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully.", fiber.Map{
		"attempt": attempt,
		"answers": answers,
	})
}
