package contentController

import (
	"log"

	"elms/database"
	"elms/middleware"
	contentModels "elms/models/content"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory creates a content category (admin)
func CreateCategory(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ParentID    *uint  `json:"parent_id"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Parent must exist
	if reqData.ParentID != nil {
		var parent contentModels.Category
		if err := db.First(&parent, *reqData.ParentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent category not found!", nil)
		}
	}

	category := contentModels.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
		ParentID:    reqData.ParentID,
		IsActive:    true,
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully.", category)
}

// GetCategories lists categories with pagination and filters
func GetCategories(c *fiber.Ctx) error {
	page, perPage, offset := utils.Pagination(c)

	db := database.Database.Db.Model(&contentModels.Category{})

	if c.Query("is_active") != "" {
		db = db.Where("is_active = ?", c.QueryBool("is_active"))
	}
	if c.Query("parent_id") != "" {
		db = db.Where("parent_id = ?", c.QueryInt("parent_id"))
	}

	var total int64
	db.Count(&total)

	var categories []contentModels.Category
	if err := db.Offset(offset).Limit(perPage).Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", fiber.Map{
		"categories":  categories,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": utils.TotalPages(total, perPage),
	})
}

// GetCategory fetches a single category
func GetCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
	}

	var category contentModels.Category
	if err := database.Database.Db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category fetched successfully.", category)
}

// UpdateCategory applies a partial update to a category (admin)
func UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
	}

	reqData := new(struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ParentID    *uint   `json:"parent_id"`
		IsActive    *bool   `json:"is_active"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var category contentModels.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	if reqData.ParentID != nil {
		var parent contentModels.Category
		if err := db.First(&parent, *reqData.ParentID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent category not found!", nil)
		}
		category.ParentID = reqData.ParentID
	}

	if reqData.Name != nil {
		category.Name = *reqData.Name
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully.", category)
}

// DeleteCategory deactivates a category (soft delete, admin). Refused while
// active children or published contents still reference it.
func DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category ID!", nil)
	}

	db := database.Database.Db

	var category contentModels.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var childCount int64
	db.Model(&contentModels.Category{}).Where("parent_id = ? AND is_active = ?", categoryID, true).Count(&childCount)
	if childCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete category with active child categories!", nil)
	}

	var contentCount int64
	db.Model(&contentModels.Content{}).Where("category_id = ? AND is_published = ?", categoryID, true).Count(&contentCount)
	if contentCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete category with published contents!", nil)
	}

	category.IsActive = false
	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error deactivating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deactivated successfully.", nil)
}
