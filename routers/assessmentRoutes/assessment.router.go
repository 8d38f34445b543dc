package assessmentRoutes

import (
	"elms/config"
	assessmentController "elms/controllers/assessment"
	"elms/middleware"
	assessmentValidator "elms/validators/assessment"

	"github.com/gofiber/fiber/v2"
)

func SetupAssessmentRoutes(app *fiber.App, cfg *config.Config) {
	assessmentGroup := app.Group("/assessment", middleware.JWTMiddleware(cfg))
	adminOnly := middleware.AdminMiddleware()

	quizGroup := assessmentGroup.Group("/quizzes")
	quizGroup.Get("/", assessmentController.GetQuizzes)
	quizGroup.Post("/", adminOnly, assessmentValidator.CreateQuiz(), assessmentController.CreateQuiz)
	quizGroup.Get("/:id", assessmentController.GetQuiz)
	quizGroup.Put("/:id", adminOnly, assessmentController.UpdateQuiz)
	quizGroup.Delete("/:id", adminOnly, assessmentController.DeleteQuiz)
	quizGroup.Post("/:id/publish", adminOnly, assessmentController.PublishQuiz)
	quizGroup.Post("/:id/attempts", assessmentController.StartAttempt)
	quizGroup.Get("/:id/statistics", adminOnly, assessmentController.GetQuizStatistics)

	attemptGroup := assessmentGroup.Group("/attempts")
	attemptGroup.Get("/", assessmentController.GetMyAttempts)
	attemptGroup.Get("/:id", assessmentController.GetAttempt)
	attemptGroup.Post("/:id/submit", assessmentController.SubmitAttempt)

	statsGroup := assessmentGroup.Group("/statistics")
	statsGroup.Get("/me", assessmentController.GetMyQuizStatistics)
	statsGroup.Get("/users/:user_id", adminOnly, assessmentController.GetUserQuizStatistics)
	statsGroup.Get("/dashboard", adminOnly, assessmentController.GetDashboardStats)

	assessmentGroup.Post("/assessments", adminOnly, assessmentValidator.CreateAssessment(), assessmentController.CreateAssessment)
	assessmentGroup.Get("/assessments", assessmentController.GetAssessments)
	assessmentGroup.Get("/assessments/:id", assessmentController.GetAssessment)
	assessmentGroup.Post("/assessments/:id/publish", adminOnly, assessmentController.PublishAssessment)
	assessmentGroup.Delete("/assessments/:id", adminOnly, assessmentController.DeleteAssessment)
	assessmentGroup.Post("/assessments/:id/submit", assessmentController.SubmitAssessment)
	assessmentGroup.Get("/assessments/:id/submissions", adminOnly, assessmentController.GetSubmissions)
	assessmentGroup.Get("/submissions/me", assessmentController.GetMySubmissions)
	assessmentGroup.Put("/submissions/:id/grade", adminOnly, assessmentController.GradeSubmission)
}
