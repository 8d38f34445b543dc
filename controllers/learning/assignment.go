package learningController

import (
	"log"
	"time"

	"elms/database"
	"elms/middleware"
	"elms/models"
	contentModels "elms/models/content"
	learningModels "elms/models/learning"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateAssignment assigns a content to a user (admin)
func CreateAssignment(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		UserID      uint       `json:"user_id"`
		ContentID   uint       `json:"content_id"`
		DueDate     *time.Time `json:"due_date"`
		IsMandatory bool       `json:"is_mandatory"`
		Notes       string     `json:"notes"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var content contentModels.Content
	if err := db.First(&content, reqData.ContentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	assignment := learningModels.LearningAssignment{
		UserID:      reqData.UserID,
		ContentID:   reqData.ContentID,
		AssignedBy:  adminID,
		AssignedAt:  time.Now(),
		DueDate:     reqData.DueDate,
		IsMandatory: reqData.IsMandatory,
		Notes:       reqData.Notes,
	}

	if err := db.Create(&assignment).Error; err != nil {
		log.Printf("Error creating assignment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	// Notify the assignee (Async)
	go func() {
		if err := utils.SendAssignmentEmail(user.DisplayName, user.Email, content.Title, assignment.Notes, assignment.DueDate); err != nil {
			log.Printf("Error sending assignment email: %v", err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully.", fiber.Map{
		"assignment_id": assignment.ID,
		"user_id":       assignment.UserID,
		"user_name":     user.DisplayName,
		"content_id":    assignment.ContentID,
		"content_title": content.Title,
		"assigned_by":   assignment.AssignedBy,
		"assigned_at":   assignment.AssignedAt,
		"due_date":      assignment.DueDate,
		"is_mandatory":  assignment.IsMandatory,
		"notes":         assignment.Notes,
	})
}

// GetMyAssignments lists the caller's assignments with content and progress info
func GetMyAssignments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db

	query := db.Model(&learningModels.LearningAssignment{}).Where("user_id = ?", userID)

	var total int64
	query.Count(&total)

	var assignments []learningModels.LearningAssignment
	if err := query.Offset(offset).Limit(perPage).Order("assigned_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type AssignmentItem struct {
		learningModels.LearningAssignment
		ContentTitle       string  `json:"content_title"`
		ProgressPercentage float64 `json:"progress_percentage"`
		IsCompleted        bool    `json:"is_completed"`
	}

	result := make([]AssignmentItem, len(assignments))
	for i, assignment := range assignments {
		item := AssignmentItem{LearningAssignment: assignment, ContentTitle: "Unknown"}

		var content contentModels.Content
		if err := db.First(&content, assignment.ContentID).Error; err == nil {
			item.ContentTitle = content.Title
		}

		var progress learningModels.LearningProgress
		if err := db.Where("user_id = ? AND content_id = ?", userID, assignment.ContentID).First(&progress).Error; err == nil {
			item.ProgressPercentage = progress.ProgressPercentage
			item.IsCompleted = progress.IsCompleted
		}

		result[i] = item
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully.", fiber.Map{
		"assignments": result,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}
