package learningController

import (
	"log"

	"elms/database"
	"elms/middleware"
	contentModels "elms/models/content"
	learningModels "elms/models/learning"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// pathContentItem is one ordered member in a learning path response
type pathContentItem struct {
	ContentID   uint   `json:"content_id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	OrderIndex  int    `json:"order_index"`
	IsRequired  bool   `json:"is_required"`
}

// CreatePath creates a learning path from an ordered content list (admin)
func CreatePath(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentIDs  []uint `json:"content_ids"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// All referenced contents must exist
	contents := make([]contentModels.Content, len(reqData.ContentIDs))
	for i, contentID := range reqData.ContentIDs {
		if err := db.First(&contents[i], contentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
	}

	path := learningModels.LearningPath{
		Title:       reqData.Title,
		Description: reqData.Description,
		CreatedBy:   adminID,
		IsActive:    true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&path).Error; err != nil {
			return err
		}
		for i, contentID := range reqData.ContentIDs {
			member := learningModels.LearningPathContent{
				PathID:     path.ID,
				ContentID:  contentID,
				OrderIndex: i,
				IsRequired: true,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating learning path: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create learning path!", nil)
	}

	items := make([]pathContentItem, len(contents))
	for i, content := range contents {
		items[i] = pathContentItem{
			ContentID:   content.ID,
			Title:       content.Title,
			ContentType: content.ContentType,
			OrderIndex:  i,
			IsRequired:  true,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Learning path created successfully.", fiber.Map{
		"path_id":     path.ID,
		"title":       path.Title,
		"description": path.Description,
		"created_by":  path.CreatedBy,
		"is_active":   path.IsActive,
		"contents":    items,
	})
}

// GetPaths lists learning paths with their ordered member contents
func GetPaths(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db

	query := db.Model(&learningModels.LearningPath{}).Where("is_active = ?", true)

	var total int64
	query.Count(&total)

	var paths []learningModels.LearningPath
	if err := query.Offset(offset).Limit(perPage).Order("created_at desc").Find(&paths).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch learning paths!", nil)
	}

	type PathItem struct {
		learningModels.LearningPath
		Contents []pathContentItem `json:"contents"`
	}

	result := make([]PathItem, len(paths))
	for i, path := range paths {
		result[i] = PathItem{LearningPath: path, Contents: pathContents(path.ID)}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning paths fetched successfully.", fiber.Map{
		"paths":       result,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetPathProgress reports the caller's progress through a learning path
func GetPathProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid path ID!", nil)
	}

	db := database.Database.Db

	var path learningModels.LearningPath
	if err := db.Where("id = ? AND is_active = ?", pathID, true).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learning path not found!", nil)
	}

	var members []learningModels.LearningPathContent
	db.Where("path_id = ?", pathID).Order("order_index asc").Find(&members)

	type MemberProgress struct {
		pathContentItem
		ProgressPercentage float64 `json:"progress_percentage"`
		IsCompleted        bool    `json:"is_completed"`
	}

	items := make([]MemberProgress, 0, len(members))
	requiredTotal := 0
	requiredCompleted := 0
	for _, member := range members {
		var content contentModels.Content
		if err := db.First(&content, member.ContentID).Error; err != nil {
			continue
		}

		item := MemberProgress{
			pathContentItem: pathContentItem{
				ContentID:   content.ID,
				Title:       content.Title,
				ContentType: content.ContentType,
				OrderIndex:  member.OrderIndex,
				IsRequired:  member.IsRequired,
			},
		}

		var progress learningModels.LearningProgress
		if err := db.Where("user_id = ? AND content_id = ?", userID, member.ContentID).First(&progress).Error; err == nil {
			item.ProgressPercentage = progress.ProgressPercentage
			item.IsCompleted = progress.IsCompleted
		}

		if member.IsRequired {
			requiredTotal++
			if item.IsCompleted {
				requiredCompleted++
			}
		}

		items = append(items, item)
	}

	completion := 0.0
	if requiredTotal > 0 {
		completion = utils.Round2(float64(requiredCompleted) / float64(requiredTotal) * 100)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Path progress fetched successfully.", fiber.Map{
		"path_id":            path.ID,
		"title":              path.Title,
		"contents":           items,
		"required_total":     requiredTotal,
		"required_completed": requiredCompleted,
		"completion_rate":    completion,
	})
}

// pathContents loads the ordered member contents for one path
func pathContents(pathID uint) []pathContentItem {
	db := database.Database.Db

	var members []learningModels.LearningPathContent
	db.Where("path_id = ?", pathID).Order("order_index asc").Find(&members)

	items := make([]pathContentItem, 0, len(members))
	for _, member := range members {
		var content contentModels.Content
		if err := db.First(&content, member.ContentID).Error; err != nil {
			continue
		}
		items = append(items, pathContentItem{
			ContentID:   content.ID,
			Title:       content.Title,
			ContentType: content.ContentType,
			OrderIndex:  member.OrderIndex,
			IsRequired:  member.IsRequired,
		})
	}
	return items
}
