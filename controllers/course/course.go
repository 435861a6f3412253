package courseController

import (
	"log"
	"strings"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/middleware"
	"github.com/rohitpatel0011/course-platform/models"
	courseValidator "github.com/rohitpatel0011/course-platform/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists the catalog, optionally filtered by exact category and
// case-insensitive title substring. The whole result set is returned in one
// response, no pagination.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Course{})

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var courses []models.Course
	if err := db.Preload("Lessons").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"count":   len(courses),
		"courses": courses,
	})
}

// GetCourseByID fetches a single course with instructor, lessons and reviews
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.
		Preload("Instructor").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Reviews").
		Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse creates a course with its lesson list; the caller becomes the
// instructor.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: userID,
		Category:     reqData.Category,
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Thumbnail != "" {
		course.Thumbnail = reqData.Thumbnail
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	for i, l := range reqData.Lessons {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title:      l.Title,
			VideoURL:   l.VideoURL,
			Duration:   l.Duration,
			OrderIndex: i,
		})
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course fields. When a lesson list is supplied the
// existing lessons are dropped and recreated, lessons have no lifecycle of
// their own.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Thumbnail != "" {
		course.Thumbnail = reqData.Thumbnail
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	// Replace the embedded lesson list when one is supplied
	if reqData.Lessons != nil {
		if err := db.Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error; err != nil {
			log.Printf("Error clearing lessons: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lessons!", nil)
		}
		for i, l := range reqData.Lessons {
			lesson := models.Lesson{
				CourseID:   course.ID,
				Title:      l.Title,
				VideoURL:   l.VideoURL,
				Duration:   l.Duration,
				OrderIndex: i,
			}
			if err := db.Create(&lesson).Error; err != nil {
				log.Printf("Error creating lesson: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lessons!", nil)
			}
		}
	}

	db.Preload("Lessons").Where("id = ?", course.ID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course along with its lessons and reviews
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	db.Where("course_id = ?", course.ID).Delete(&models.Lesson{})
	db.Where("course_id = ?", course.ID).Delete(&models.Review{})

	if err := db.Delete(&course).Error; err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}

// GetCourseStats returns catalog-wide aggregates
func GetCourseStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses int64
	db.Model(&models.Course{}).Count(&totalCourses)

	var totalReviews int64
	db.Model(&models.Review{}).Count(&totalReviews)

	var totalStudents int64
	db.Model(&models.CourseProgress{}).Count(&totalStudents)

	type categoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var byCategory []categoryCount
	db.Model(&models.Course{}).
		Select("category, count(*) as count").
		Group("category").
		Scan(&byCategory)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total_courses":     totalCourses,
		"total_reviews":     totalReviews,
		"total_enrollments": totalStudents,
		"by_category":       byCategory,
	})
}
