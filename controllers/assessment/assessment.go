package assessmentController

import (
	"log"
	"time"

	"elms/database"
	"elms/middleware"
	assessmentModels "elms/models/assessment"
	contentModels "elms/models/content"
	"elms/utils"
	assessmentValidator "elms/validators/assessment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateAssessment creates a manually graded assessment (admin)
func CreateAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssessment").(*assessmentValidator.CreateAssessmentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if reqData.ContentID != nil {
		var content contentModels.Content
		if err := db.First(&content, *reqData.ContentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
	}

	var dueDate *time.Time
	if reqData.DueDate != nil && *reqData.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, *reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date, expected RFC3339!", nil)
		}
		dueDate = &parsed
	}

	assessment := assessmentModels.Assessment{
		Title:          reqData.Title,
		Description:    reqData.Description,
		AssessmentType: reqData.AssessmentType,
		ContentID:      reqData.ContentID,
		DueDate:        dueDate,
		TotalPoints:    reqData.TotalPoints,
		PassingScore:   70,
		CreatedBy:      userID,
	}
	if reqData.PassingScore != nil {
		assessment.PassingScore = *reqData.PassingScore
	}

	if err := db.Create(&assessment).Error; err != nil {
		log.Printf("Error creating assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assessment created successfully.", assessment)
}

// GetAssessments lists assessments with pagination and filters
func GetAssessments(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&assessmentModels.Assessment{})

	if assessmentType := c.Query("assessment_type"); assessmentType != "" {
		db = db.Where("assessment_type = ?", assessmentType)
	}
	if c.Query("content_id") != "" {
		db = db.Where("content_id = ?", c.QueryInt("content_id"))
	}
	if c.Query("is_published") != "" {
		db = db.Where("is_published = ?", c.QueryBool("is_published"))
	}

	var total int64
	db.Count(&total)

	var assessments []assessmentModels.Assessment
	if err := db.Offset(offset).Limit(perPage).Order("created_at desc").Find(&assessments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched successfully.", fiber.Map{
		"assessments": assessments,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetAssessment fetches a single assessment
func GetAssessment(c *fiber.Ctx) error {
	assessmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	var assessment assessmentModels.Assessment
	if err := database.Database.Db.First(&assessment, assessmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment fetched successfully.", assessment)
}

// PublishAssessment opens an assessment for submissions (admin)
func PublishAssessment(c *fiber.Ctx) error {
	assessmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	db := database.Database.Db

	var assessment assessmentModels.Assessment
	if err := db.First(&assessment, assessmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	assessment.IsPublished = true
	if err := db.Save(&assessment).Error; err != nil {
		log.Printf("Error publishing assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment published successfully.", assessment)
}

// DeleteAssessment removes an assessment and its submissions (admin)
func DeleteAssessment(c *fiber.Ctx) error {
	assessmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	db := database.Database.Db

	var assessment assessmentModels.Assessment
	if err := db.First(&assessment, assessmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assessment not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assessment_id = ?", assessment.ID).Delete(&assessmentModels.AssessmentSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&assessment).Error
	})
	if err != nil {
		log.Printf("Error deleting assessment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assessment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment deleted successfully.", nil)
}

// SubmitAssessment records the caller's submission on a published assessment
func SubmitAssessment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assessmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	reqData := new(struct {
		SubmissionData datatypes.JSON `json:"submission_data"`
		FilePath       string         `json:"file_path"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var assessment assessmentModels.Assessment
	if err := db.First(&assessment, assessmentID).Error; err != nil || !assessment.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot submit. Assessment may not exist or is not published.", nil)
	}

	submission := assessmentModels.AssessmentSubmission{
		AssessmentID:   assessment.ID,
		UserID:         userID,
		SubmissionData: reqData.SubmissionData,
		FilePath:       reqData.FilePath,
		SubmittedAt:    time.Now(),
		Status:         assessmentModels.SubmissionSubmitted,
	}

	if err := db.Create(&submission).Error; err != nil {
		log.Printf("Error creating submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission recorded successfully.", fiber.Map{
		"submission_id": submission.ID,
		"assessment_id": submission.AssessmentID,
		"submitted_at":  submission.SubmittedAt,
		"status":        submission.Status,
	})
}

// GradeSubmission records a manual grade on a submission (admin)
func GradeSubmission(c *fiber.Ctx) error {
	graderID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submissionID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid submission ID!", nil)
	}

	reqData := new(struct {
		Score    *float64 `json:"score"`
		Feedback string   `json:"feedback"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Score == nil || *reqData.Score < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A non-negative score is required!", nil)
	}

	db := database.Database.Db

	var submission assessmentModels.AssessmentSubmission
	if err := db.First(&submission, submissionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	now := time.Now()
	submission.Score = reqData.Score
	submission.Feedback = reqData.Feedback
	submission.GradedBy = &graderID
	submission.GradedAt = &now
	submission.Status = assessmentModels.SubmissionGraded

	if err := db.Save(&submission).Error; err != nil {
		log.Printf("Error grading submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully.", submission)
}

// GetSubmissions lists submissions for one assessment (admin)
func GetSubmissions(c *fiber.Ctx) error {
	assessmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&assessmentModels.AssessmentSubmission{}).Where("assessment_id = ?", assessmentID)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var submissions []assessmentModels.AssessmentSubmission
	if err := db.Offset(offset).Limit(perPage).Order("submitted_at desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully.", fiber.Map{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetMySubmissions lists the caller's own submissions
func GetMySubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&assessmentModels.AssessmentSubmission{}).Where("user_id = ?", userID)

	if c.Query("assessment_id") != "" {
		db = db.Where("assessment_id = ?", c.QueryInt("assessment_id"))
	}

	var total int64
	db.Count(&total)

	var submissions []assessmentModels.AssessmentSubmission
	if err := db.Offset(offset).Limit(perPage).Order("submitted_at desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully.", fiber.Map{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}
