package contentValidator

import (
	"strings"

	"elms/middleware"

	"github.com/gofiber/fiber/v2"
)

var contentTypes = map[string]bool{
	"video":    true,
	"document": true,
	"audio":    true,
	"link":     true,
	"scorm":    true,
}

// CreateCategory validator middleware
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Category name must be at least 2 characters long!",
			})
		}

		return c.Next()
	}
}

// CreateContent validator middleware
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title"`
			ContentType     string `json:"content_type"`
			DurationMinutes int    `json:"duration_minutes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if !contentTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be one of: video, document, audio, link, scorm!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
