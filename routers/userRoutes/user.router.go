package userRoutes

import (
	"elms/config"
	userController "elms/controllers/user"
	"elms/middleware"
	userValidator "elms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, cfg *config.Config) {
	// Any authenticated user can read their own account; registered ahead
	// of the admin-gated group so it is not captured by /users/:id
	app.Get("/users/me", middleware.JWTMiddleware(cfg), userController.Me)

	userGroup := app.Group("/users", middleware.JWTMiddleware(cfg), middleware.AdminMiddleware())

	userGroup.Get("/", userController.GetUsers)
	userGroup.Post("/", userValidator.CreateUser(), userController.CreateUser)
	userGroup.Get("/:id", userController.GetUser)
	userGroup.Put("/:id", userValidator.UpdateUser(), userController.UpdateUser)
	userGroup.Delete("/:id", userController.DeleteUser)
}
