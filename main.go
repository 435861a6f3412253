package main

import (
	"log"

	"github.com/rohitpatel0011/course-platform/config"
	"github.com/rohitpatel0011/course-platform/database"
	authRoutes "github.com/rohitpatel0011/course-platform/routers/authRoutes"
	courseRoutes "github.com/rohitpatel0011/course-platform/routers/courseRoutes"
	enrollmentRoutes "github.com/rohitpatel0011/course-platform/routers/enrollmentRoutes"
	"github.com/rohitpatel0011/course-platform/utils"

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

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"message": "API is running live!",
		})
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)

	// Hourly repair of the enrollment counters
	reconciler := utils.StartEnrollmentReconciler()
	defer reconciler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
