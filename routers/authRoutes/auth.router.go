package authRoutes

import (
	authControllers "github.com/rohitpatel0011/course-platform/controllers/auth"
	"github.com/rohitpatel0011/course-platform/middleware"
	authValidators "github.com/rohitpatel0011/course-platform/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
}
