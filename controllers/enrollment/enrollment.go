package enrollmentController

import (
	"log"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/middleware"
	"github.com/rohitpatel0011/course-platform/models"
	"github.com/rohitpatel0011/course-platform/utils"
	enrollmentValidator "github.com/rohitpatel0011/course-platform/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse creates a progress record for the (user, course) pair and
// bumps the course enrollment counter. The two writes are separate, no
// transaction wraps them; the counter reconciler repairs any drift
// out-of-band.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	// Check if course exists
	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// Check if user is already enrolled
	var existing models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already enrolled", nil)
	}

	progress := models.CourseProgress{
		UserID:           userID,
		CourseID:         uint(courseID),
		CompletedLessons: []uint{},
	}

	if err := db.Create(&progress).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	// Separate counter write, see the note above
	if err := db.Model(&models.Course{}).Where("id = ?", course.ID).
		UpdateColumn("students_enrolled", gorm.Expr("students_enrolled + 1")).Error; err != nil {
		log.Printf("Error incrementing enrollment counter: %v", err)
	}

	go utils.PushEvent("course.enrolled", fiber.Map{
		"user_id":   userID,
		"course_id": course.ID,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment successful! Welcome to the course.", progress)
}

// GetMyCourses lists the caller's enrollments with embedded course data
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.CourseProgress
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Course").
		Preload("Course.Instructor").
		Preload("Course.Lessons").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"count":       len(enrollments),
		"enrollments": enrollments,
	})
}

// CheckEnrollment reports whether the caller is enrolled in a course
func CheckEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var progress models.CourseProgress
	isEnrolled := database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched!", fiber.Map{
		"is_enrolled": isEnrolled,
	})
}

// UpdateProgress marks a lesson complete for the caller's enrollment. The
// completed set has set semantics: marking an already-complete lesson is a
// no-op. Lesson membership in the course is not checked, and the completion
// flag is never flipped here; clients derive the percentage themselves.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedProgress").(*enrollmentValidator.ProgressPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found", nil)
	}

	if progress.HasCompleted(reqData.LessonID) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already marked complete.", progress)
	}

	progress.CompletedLessons = append(progress.CompletedLessons, reqData.LessonID)

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}
