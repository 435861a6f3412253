package enrollmentRoutes

import (
	controllers "github.com/rohitpatel0011/course-platform/controllers/enrollment"
	"github.com/rohitpatel0011/course-platform/middleware"
	validators "github.com/rohitpatel0011/course-platform/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment, progress and certificate routes.
// Fixed paths are registered before the :courseId routes so fiber does not
// swallow them as params.
func SetupEnrollmentRoutes(app *fiber.App) {
	group := app.Group("/api/enrollment", middleware.JWTMiddleware)

	group.Get("/my-courses", controllers.GetMyCourses)
	group.Get("/certificates", controllers.GetUserCertificates)
	group.Get("/check/:courseId", validators.CheckEnrollment(), controllers.CheckEnrollment)

	group.Post("/:courseId/certificate", validators.EnrollCourse(), controllers.RequestCertificate)
	group.Post("/:courseId", validators.EnrollCourse(), controllers.EnrollInCourse)
	group.Put("/:id/progress", validators.UpdateProgress(), controllers.UpdateProgress)
}
