package enrollmentController

import (
	"log"
	"time"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/middleware"
	"github.com/rohitpatel0011/course-platform/models"
	"github.com/rohitpatel0011/course-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestCertificate issues a completion certificate once every lesson of
// the course is in the caller's completed set.
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Lessons").Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// Check enrollment
	var progress models.CourseProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Every lesson must be complete
	if len(course.Lessons) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no lessons to complete!", nil)
	}
	for _, lesson := range course.Lessons {
		if !progress.HasCompleted(lesson.ID) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
		}
	}

	// Check if certificate already exists
	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate already issued!", existing)
	}

	cert := models.Certificate{
		UserID:            userID,
		CourseID:          course.ID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}

	if err := db.Create(&cert).Error; err != nil {
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		go utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

// GetUserCertificates lists the caller's certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certs []models.Certificate
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Course").
		Order("issued_at desc").
		Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"count":        len(certs),
		"certificates": certs,
	})
}
