package courseValidator

import (
	"strconv"
	"strings"

	"github.com/rohitpatel0011/course-platform/middleware"

	"github.com/gofiber/fiber/v2"
)

// LessonPayload is one lesson inside a course create/update request
type LessonPayload struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
	Duration string `json:"duration"`
}

// CoursePayload is the validated course create/update body. On update, nil
// Lessons means "leave the lesson list alone"; an empty slice clears it.
type CoursePayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       *float64        `json:"price"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Level       string          `json:"level"`
	Lessons     []LessonPayload `json:"lessons"`
}

// ReviewPayload is the validated review submission body
type ReviewPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CourseID validates the :id route param and stores it in Locals
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
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

// CreateCourse validates the course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Validate Category
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}

		// Validate Price
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the course update body; all fields are optional
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// AddReview validates the review submission body
func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if strings.TrimSpace(reqData.Comment) == "" {
			errors["comment"] = "Comment is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
