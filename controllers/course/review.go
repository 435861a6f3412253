package courseController

import (
	"log"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/middleware"
	"github.com/rohitpatel0011/course-platform/models"
	courseValidator "github.com/rohitpatel0011/course-platform/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AddCourseReview appends a review and recomputes the course aggregates.
// The duplicate check is read-then-write: two concurrent submissions from
// the same user inside the race window can both pass. That gap is a known
// property of this flow, not something this handler guards against.
func AddCourseReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Check if user has already reviewed this course
	var existingReview models.Review
	if err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course already reviewed", nil)
	}

	review := models.Review{
		CourseID: course.ID,
		UserID:   userID,
		Name:     user.Name,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		log.Printf("Error saving review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	// Recompute aggregates from the full review list. The mean is stored as
	// a raw float64, no rounding is applied.
	var reviews []models.Review
	if err := db.Where("course_id = ?", course.ID).Find(&reviews).Error; err != nil {
		log.Printf("Error fetching reviews: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course rating!", nil)
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	course.NumReviews = len(reviews)
	course.Rating = float64(sum) / float64(len(reviews))

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course aggregates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review added successfully!", review)
}
