package contentRoutes

import (
	"elms/config"
	contentController "elms/controllers/content"
	"elms/middleware"
	contentValidator "elms/validators/content"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App, cfg *config.Config) {
	contentGroup := app.Group("/contents", middleware.JWTMiddleware(cfg))
	adminOnly := middleware.AdminMiddleware()

	// Categories first so they are not captured by /:id
	categoryGroup := contentGroup.Group("/categories")
	categoryGroup.Get("/", contentController.GetCategories)
	categoryGroup.Post("/", adminOnly, contentValidator.CreateCategory(), contentController.CreateCategory)
	categoryGroup.Get("/:id", contentController.GetCategory)
	categoryGroup.Put("/:id", adminOnly, contentController.UpdateCategory)
	categoryGroup.Delete("/:id", adminOnly, contentController.DeleteCategory)

	contentGroup.Get("/", contentController.GetContents)
	contentGroup.Post("/", adminOnly, contentValidator.CreateContent(), contentController.CreateContent)
	contentGroup.Get("/:id", contentController.GetContent)
	contentGroup.Put("/:id", adminOnly, contentController.UpdateContent)
	contentGroup.Delete("/:id", adminOnly, contentController.DeleteContent)
	contentGroup.Post("/:id/publish", adminOnly, contentController.PublishContent)
	contentGroup.Post("/:id/unpublish", adminOnly, contentController.UnpublishContent)
}
