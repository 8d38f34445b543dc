package middleware

import (
	"elms/database"
	"elms/models"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware gates admin-only routes. It verifies the caller is an
// active user; the role check itself is a placeholder so any authenticated
// active user currently passes.
// TODO: enforce user.Role == "ADMIN" once role assignment is exposed in user management.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
