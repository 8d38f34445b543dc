package assessmentController

import (
	"math"

	"elms/database"
	"elms/middleware"
	"elms/models"
	assessmentModels "elms/models/assessment"
	contentModels "elms/models/content"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetQuizStatistics aggregates attempt outcomes for one quiz (admin).
// Score, pass rate and time averages only consider completed attempts.
func GetQuizStatistics(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	db := database.Database.Db

	var quiz assessmentModels.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var attempts []assessmentModels.QuizAttempt
	if err := db.Where("quiz_id = ?", quiz.ID).Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	totalAttempts := len(attempts)
	completed := 0
	passed := 0
	scoreSum := 0.0
	timeSum := 0
	for _, attempt := range attempts {
		if attempt.Status != assessmentModels.StatusCompleted {
			continue
		}
		completed++
		if attempt.Score != nil {
			scoreSum += *attempt.Score
		}
		if attempt.IsPassed {
			passed++
		}
		timeSum += attempt.TimeSpentMinutes
	}

	averageScore := 0.0
	passRate := 0.0
	averageTime := 0
	if completed > 0 {
		averageScore = utils.Round2(scoreSum / float64(completed))
		passRate = utils.Round2(float64(passed) / float64(completed) * 100)
		averageTime = int(math.Round(float64(timeSum) / float64(completed)))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz statistics fetched successfully.", fiber.Map{
		"quiz_id":                    quiz.ID,
		"quiz_title":                 quiz.Title,
		"total_attempts":             totalAttempts,
		"completed_attempts":         completed,
		"average_score":              averageScore,
		"pass_rate":                  passRate,
		"average_time_spent_minutes": averageTime,
	})
}

// userQuizStats aggregates one user's completed attempts
func userQuizStats(userID uint) fiber.Map {
	db := database.Database.Db

	var attempts []assessmentModels.QuizAttempt
	db.Where("user_id = ? AND status = ?", userID, assessmentModels.StatusCompleted).Find(&attempts)

	taken := len(attempts)
	passed := 0
	scoreSum := 0.0
	timeSum := 0
	for _, attempt := range attempts {
		if attempt.IsPassed {
			passed++
		}
		if attempt.Score != nil {
			scoreSum += *attempt.Score
		}
		timeSum += attempt.TimeSpentMinutes
	}

	averageScore := 0.0
	if taken > 0 {
		averageScore = utils.Round2(scoreSum / float64(taken))
	}

	return fiber.Map{
		"user_id":                  userID,
		"quizzes_taken":            taken,
		"quizzes_passed":           passed,
		"average_score":            averageScore,
		"total_time_spent_minutes": timeSum,
	}
}

// GetUserQuizStatistics aggregates a given user's quiz activity (admin)
func GetUserQuizStatistics(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User statistics fetched successfully.", userQuizStats(user.ID))
}

// GetMyQuizStatistics aggregates the caller's own quiz activity
func GetMyQuizStatistics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully.", userQuizStats(userID))
}

// GetDashboardStats reports platform-wide totals and today's attempt
// activity (admin)
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, activeUsers int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_active = ?", true).Count(&activeUsers)

	var totalContents, publishedContents int64
	db.Model(&contentModels.Content{}).Count(&totalContents)
	db.Model(&contentModels.Content{}).Where("is_published = ?", true).Count(&publishedContents)

	var totalQuizzes int64
	db.Model(&assessmentModels.Quiz{}).Count(&totalQuizzes)

	var totalAttempts, attemptsToday int64
	db.Model(&assessmentModels.QuizAttempt{}).Count(&totalAttempts)
	db.Model(&assessmentModels.QuizAttempt{}).
		Where("started_at >= ?", now.BeginningOfDay()).
		Count(&attemptsToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard statistics fetched successfully.", fiber.Map{
		"total_users":        totalUsers,
		"active_users":       activeUsers,
		"total_contents":     totalContents,
		"published_contents": publishedContents,
		"total_quizzes":      totalQuizzes,
		"total_attempts":     totalAttempts,
		"attempts_today":     attemptsToday,
	})
}
