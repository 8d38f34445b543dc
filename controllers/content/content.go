package contentController

import (
	"log"

	"elms/database"
	"elms/middleware"
	contentModels "elms/models/content"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
)

// requireActiveCategory checks that a referenced category exists and is active
func requireActiveCategory(categoryID uint) bool {
	var category contentModels.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return false
	}
	return category.IsActive
}

// CreateContent creates a learning content item (admin)
func CreateContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		CategoryID      *uint  `json:"category_id"`
		ContentType     string `json:"content_type"`
		FilePath        string `json:"file_path"`
		DurationMinutes int    `json:"duration_minutes"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.CategoryID != nil && !requireActiveCategory(*reqData.CategoryID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found or inactive!", nil)
	}

	content := contentModels.Content{
		Title:           reqData.Title,
		Description:     reqData.Description,
		CategoryID:      reqData.CategoryID,
		ContentType:     reqData.ContentType,
		FilePath:        reqData.FilePath,
		DurationMinutes: reqData.DurationMinutes,
		CreatedBy:       userID,
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		log.Printf("Error creating content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully.", content)
}

// GetContents lists contents with pagination and filters, newest first
func GetContents(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&contentModels.Content{})

	if c.Query("category_id") != "" {
		db = db.Where("category_id = ?", c.QueryInt("category_id"))
	}
	if contentType := c.Query("content_type"); contentType != "" {
		db = db.Where("content_type = ?", contentType)
	}
	if c.Query("is_published") != "" {
		db = db.Where("is_published = ?", c.QueryBool("is_published"))
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var contents []contentModels.Content
	if err := db.Offset(offset).Limit(perPage).Order("created_at desc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch contents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents fetched successfully.", fiber.Map{
		"contents":    contents,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetContent fetches a single content
func GetContent(c *fiber.Ctx) error {
	contentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	var content contentModels.Content
	if err := database.Database.Db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully.", content)
}

// UpdateContent applies a partial update to a content (admin)
func UpdateContent(c *fiber.Ctx) error {
	contentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	reqData := new(struct {
		Title           *string `json:"title"`
		Description     *string `json:"description"`
		CategoryID      *uint   `json:"category_id"`
		ContentType     *string `json:"content_type"`
		FilePath        *string `json:"file_path"`
		DurationMinutes *int    `json:"duration_minutes"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if reqData.CategoryID != nil {
		if !requireActiveCategory(*reqData.CategoryID) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found or inactive!", nil)
		}
		content.CategoryID = reqData.CategoryID
	}

	if reqData.Title != nil {
		content.Title = *reqData.Title
	}
	if reqData.Description != nil {
		content.Description = *reqData.Description
	}
	if reqData.ContentType != nil {
		content.ContentType = *reqData.ContentType
	}
	if reqData.FilePath != nil {
		content.FilePath = *reqData.FilePath
	}
	if reqData.DurationMinutes != nil {
		content.DurationMinutes = *reqData.DurationMinutes
	}

	if err := db.Save(&content).Error; err != nil {
		log.Printf("Error updating content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully.", content)
}

// DeleteContent removes a content row (hard delete, admin)
func DeleteContent(c *fiber.Ctx) error {
	contentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if err := db.Delete(&content).Error; err != nil {
		log.Printf("Error deleting content: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully.", nil)
}

// PublishContent marks a content published (admin)
func PublishContent(c *fiber.Ctx) error {
	return setContentPublished(c, true)
}

// UnpublishContent hides a content from learners (admin)
func UnpublishContent(c *fiber.Ctx) error {
	return setContentPublished(c, false)
}

func setContentPublished(c *fiber.Ctx, published bool) error {
	contentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
	}

	db := database.Database.Db

	var content contentModels.Content
	if err := db.First(&content, contentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	content.IsPublished = published
	if err := db.Save(&content).Error; err != nil {
		log.Printf("Error updating content publish state: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	message := "Content published successfully."
	if !published {
		message = "Content unpublished successfully."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, content)
}
