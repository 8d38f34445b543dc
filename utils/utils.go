package utils

import (
	"math"

	"github.com/gofiber/fiber/v2"
)

// Pagination reads page/per_page query params and returns page, perPage and
// the row offset. page is 1-based, per_page is capped at 100.
func Pagination(c *fiber.Ctx) (int, int, int) {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	return page, perPage, (page - 1) * perPage
}

// TotalPages computes the page count for a paginated response
func TotalPages(total int64, perPage int) int {
	return int(math.Ceil(float64(total) / float64(perPage)))
}

// Round2 rounds to two decimal places, used for percentage figures
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
