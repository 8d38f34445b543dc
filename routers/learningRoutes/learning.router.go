package learningRoutes

import (
	"elms/config"
	learningController "elms/controllers/learning"
	"elms/middleware"
	learningValidator "elms/validators/learning"

	"github.com/gofiber/fiber/v2"
)

func SetupLearningRoutes(app *fiber.App, cfg *config.Config) {
	learningGroup := app.Group("/learning", middleware.JWTMiddleware(cfg))
	adminOnly := middleware.AdminMiddleware()

	learningGroup.Put("/progress/:content_id", learningValidator.UpdateProgress(), learningController.UpdateProgress)
	learningGroup.Get("/progress/summary", learningController.GetProgressSummary)
	learningGroup.Get("/progress/:content_id", learningController.GetContentProgress)
	learningGroup.Get("/progress", learningController.GetMyProgress)
	learningGroup.Get("/stats/content/:content_id", adminOnly, learningController.GetContentProgressStats)

	learningGroup.Post("/assignments", adminOnly, learningValidator.CreateAssignment(), learningController.CreateAssignment)
	learningGroup.Get("/assignments", learningController.GetMyAssignments)

	learningGroup.Post("/paths", adminOnly, learningValidator.CreatePath(), learningController.CreatePath)
	learningGroup.Get("/paths", learningController.GetPaths)
	learningGroup.Get("/paths/:id/progress", learningController.GetPathProgress)
}
