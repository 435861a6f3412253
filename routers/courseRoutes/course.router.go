package courseRoutes

import (
	controllers "github.com/rohitpatel0011/course-platform/controllers/course"
	"github.com/rohitpatel0011/course-platform/middleware"
	validators "github.com/rohitpatel0011/course-platform/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, review and admin course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/course")

	// Public catalog
	courseGroup.Get("/", controllers.GetAllCourses)
	courseGroup.Get("/stats", controllers.GetCourseStats)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseByID)

	// Reviews
	courseGroup.Post("/:id/reviews", middleware.JWTMiddleware, validators.CourseID(), validators.AddReview(), controllers.AddCourseReview)

	// Admin-only course mutation
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), controllers.DeleteCourse)
}
