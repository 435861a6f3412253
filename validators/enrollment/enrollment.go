package enrollmentValidator

import (
	"strconv"
	"strings"

	"github.com/rohitpatel0011/course-platform/middleware"

	"github.com/gofiber/fiber/v2"
)

// ProgressPayload is the validated progress update body
type ProgressPayload struct {
	LessonID uint `json:"lesson_id"`
}

// courseIDParam validates a positive integer route param and stores it in
// Locals under "courseID".
func courseIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(idStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// EnrollCourse validates the :courseId param for enrollment
func EnrollCourse() fiber.Handler {
	return courseIDParam("courseId")
}

// CheckEnrollment validates the :courseId param for the status check
func CheckEnrollment() fiber.Handler {
	return courseIDParam("courseId")
}

// UpdateProgress validates the :id param (course ID) and the lesson body
func UpdateProgress() fiber.Handler {
	param := courseIDParam("id")
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.LessonID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"lesson_id": "Lesson ID is required!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return param(c)
	}
}
