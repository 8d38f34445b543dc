package main

import (
	"log"

	"elms/config"
	"elms/database"
	"elms/routers/assessmentRoutes"
	"elms/routers/authRoutes"
	"elms/routers/contentRoutes"
	"elms/routers/learningRoutes"
	"elms/routers/userRoutes"
	"elms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, config.AppConfig)
	userRoutes.SetupUserRoutes(app, config.AppConfig)
	contentRoutes.SetupContentRoutes(app, config.AppConfig)
	learningRoutes.SetupLearningRoutes(app, config.AppConfig)
	assessmentRoutes.SetupAssessmentRoutes(app, config.AppConfig)

	// Abandon attempts that ran out their time limit
	if sweeper := utils.StartAttemptSweeper(); sweeper != nil {
		defer sweeper.Stop()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
