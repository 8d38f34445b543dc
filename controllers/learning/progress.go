package learningController

import (
	"log"
	"time"

	"elms/database"
	"elms/middleware"
	contentModels "elms/models/content"
	learningModels "elms/models/learning"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress upserts the caller's progress on a content. The row is
// created on first contact; completion at 100% is a one-way latch.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := c.ParamsInt("content_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	reqData := new(struct {
		ProgressPercentage float64 `json:"progress_percentage"`
		TimeSpentMinutes   int     `json:"time_spent_minutes"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.ProgressPercentage < 0 || reqData.TimeSpentMinutes < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Progress values must not be negative!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	now := time.Now()

	var progress learningModels.LearningProgress
	if err := db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error; err != nil {
		progress = learningModels.LearningProgress{
			UserID:         userID,
			ContentID:      uint(contentID),
			StartedAt:      now,
			LastAccessedAt: now,
		}
	}

	percentage := reqData.ProgressPercentage
	if percentage > 100 {
		percentage = 100
	}

	progress.ProgressPercentage = percentage
	progress.TimeSpentMinutes += reqData.TimeSpentMinutes
	progress.LastAccessedAt = now

	// Completion is stamped once and never reverted
	if percentage >= 100 && !progress.IsCompleted {
		progress.IsCompleted = true
		progress.CompletedAt = &now
	}

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully.", fiber.Map{
		"progress_id":         progress.ID,
		"progress_percentage": progress.ProgressPercentage,
		"is_completed":        progress.IsCompleted,
	})
}

// GetContentProgress returns the caller's progress on one content, or a
// zero-value shape if nothing was recorded yet
func GetContentProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID, err := c.ParamsInt("content_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	var progress learningModels.LearningProgress
	if err := database.Database.Db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No progress recorded.", fiber.Map{
			"progress_percentage": 0.0,
			"time_spent_minutes":  0,
			"is_completed":        false,
			"started_at":          nil,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", progress)
}

// GetMyProgress lists all of the caller's progress rows with content titles
func GetMyProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var progressList []learningModels.LearningProgress
	if err := db.Where("user_id = ?", userID).Order("last_accessed_at desc").Find(&progressList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	type ProgressWithContent struct {
		learningModels.LearningProgress
		ContentTitle string `json:"content_title"`
	}

	result := make([]ProgressWithContent, 0, len(progressList))
	for _, progress := range progressList {
		var content contentModels.Content
		if err := db.First(&content, progress.ContentID).Error; err != nil {
			continue
		}
		result = append(result, ProgressWithContent{
			LearningProgress: progress,
			ContentTitle:     content.Title,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"progress": result,
	})
}

// GetProgressSummary aggregates the caller's learning activity
func GetProgressSummary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var progressList []learningModels.LearningProgress
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&progressList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	started := len(progressList)
	completed := 0
	totalTime := 0
	totalProgress := 0.0
	for _, progress := range progressList {
		if progress.IsCompleted {
			completed++
		}
		totalTime += progress.TimeSpentMinutes
		totalProgress += progress.ProgressPercentage
	}

	averageProgress := 0.0
	if started > 0 {
		averageProgress = utils.Round2(totalProgress / float64(started))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Summary fetched successfully.", fiber.Map{
		"contents_started":         started,
		"contents_completed":       completed,
		"total_time_spent_minutes": totalTime,
		"average_progress":         averageProgress,
	})
}

// GetContentProgressStats aggregates learner progress on one content (admin)
func GetContentProgressStats(c *fiber.Ctx) error {
	contentID, err := c.ParamsInt("content_id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	var progressList []learningModels.LearningProgress
	if err := db.Where("content_id = ?", contentID).Find(&progressList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	learners := len(progressList)
	completed := 0
	totalTime := 0
	totalProgress := 0.0
	for _, progress := range progressList {
		if progress.IsCompleted {
			completed++
		}
		totalTime += progress.TimeSpentMinutes
		totalProgress += progress.ProgressPercentage
	}

	completionRate := 0.0
	averageProgress := 0.0
	if learners > 0 {
		completionRate = utils.Round2(float64(completed) / float64(learners) * 100)
		averageProgress = utils.Round2(totalProgress / float64(learners))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content statistics fetched successfully.", fiber.Map{
		"content_id":               content.ID,
		"content_title":            content.Title,
		"learner_count":            learners,
		"completed_count":          completed,
		"completion_rate":          completionRate,
		"average_progress":         averageProgress,
		"total_time_spent_minutes": totalTime,
	})
}
