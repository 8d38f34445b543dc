package authRoutes

import (
	"elms/config"
	authController "elms/controllers/auth"
	"elms/middleware"
	authValidator "elms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, cfg *config.Config) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/refresh", authValidator.Refresh(), authController.Refresh)
	authGroup.Post("/logout", middleware.JWTMiddleware(cfg), authController.Logout)
	authGroup.Put("/change/password", middleware.JWTMiddleware(cfg), authValidator.ChangePassword(), authController.ChangePassword)
	authGroup.Get("/me", middleware.JWTMiddleware(cfg), authController.Me)
	authGroup.Get("/verify", middleware.JWTMiddleware(cfg), authController.VerifyToken)
}
