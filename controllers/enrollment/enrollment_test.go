package enrollmentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/rohitpatel0011/course-platform/config"
	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/middleware"
	"github.com/rohitpatel0011/course-platform/models"
	enrollmentRoutes "github.com/rohitpatel0011/course-platform/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{
		JWTKey:    "testsecret",
		SaltRound: 4,
		TokenDays: 30,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	return app
}

func createUser(t *testing.T, name, email string) (models.User, string) {
	user := models.User{Name: name, Email: email, Password: "x", Role: models.RoleUser}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func createCourseWithLessons(t *testing.T, title string, lessonCount int) models.Course {
	instructor := models.User{Name: "Instructor", Email: title + "-instructor@example.com", Password: "x", Role: models.RoleAdmin}
	if err := database.Database.Db.Create(&instructor).Error; err != nil {
		t.Fatalf("failed to create instructor: %v", err)
	}

	course := models.Course{
		Title:        title,
		Description:  "desc",
		Category:     "Programming",
		Price:        499,
		InstructorID: instructor.ID,
	}
	for i := 0; i < lessonCount; i++ {
		course.Lessons = append(course.Lessons, models.Lesson{
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i,
		})
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

func doJSON(app *fiber.App, method, path, token string, body map[string]interface{}) (map[string]interface{}, int) {
	var buf *bytes.Buffer
	if body != nil {
		jsonData, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	r := httptest.NewRequest(method, path, buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	resp, _ := app.Test(r)
	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode
}

func TestEnroll(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	_, token := createUser(t, "Student", "student@example.com")

	result, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, result["success"])

	var updated models.Course
	database.Database.Db.Where("id = ?", course.ID).First(&updated)
	assert.Equal(t, 1, updated.StudentsEnrolled)
}

func TestEnrollTwice(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	user, token := createUser(t, "Student", "student@example.com")

	_, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, status)

	result, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Already enrolled", result["message"])

	// Exactly one progress record, counter incremented once
	var count int64
	database.Database.Db.Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var updated models.Course
	database.Database.Db.Where("id = ?", course.ID).First(&updated)
	assert.Equal(t, 1, updated.StudentsEnrolled)
}

func TestEnrollMissingCourse(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Student", "student@example.com")

	result, status := doJSON(app, "POST", "/api/enrollment/9999", token, nil)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Course not found", result["message"])
}

func TestEnrollUnauthenticated(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)

	_, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// No side effect
	var count int64
	database.Database.Db.Model(&models.CourseProgress{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var updated models.Course
	database.Database.Db.Where("id = ?", course.ID).First(&updated)
	assert.Equal(t, 0, updated.StudentsEnrolled)
}

func TestCheckEnrollment(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	_, token := createUser(t, "Student", "student@example.com")

	result, status := doJSON(app, "GET", fmt.Sprintf("/api/enrollment/check/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, result["data"].(map[string]interface{})["is_enrolled"])

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)

	result, status = doJSON(app, "GET", fmt.Sprintf("/api/enrollment/check/%d", course.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["data"].(map[string]interface{})["is_enrolled"])
}

func TestMyCourses(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	other := createCourseWithLessons(t, "Watercolors", 1)
	_, token := createUser(t, "Student", "student@example.com")
	_, otherToken := createUser(t, "Other", "other@example.com")

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)
	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", other.ID), otherToken, nil)

	result, status := doJSON(app, "GET", "/api/enrollment/my-courses", token, nil)

	assert.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	enrollments := data["enrollments"].([]interface{})
	assert.Len(t, enrollments, 1)

	embedded := enrollments[0].(map[string]interface{})["course"].(map[string]interface{})
	assert.Equal(t, "Go Basics", embedded["title"])
	assert.Len(t, embedded["lessons"], 2)
}

func TestUpdateProgress(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	user, token := createUser(t, "Student", "student@example.com")

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)

	lessonID := course.Lessons[0].ID
	result, status := doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, map[string]interface{}{
		"lesson_id": lessonID,
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])

	var progress models.CourseProgress
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress)
	assert.Len(t, progress.CompletedLessons, 1)
	assert.Equal(t, lessonID, progress.CompletedLessons[0])
	assert.False(t, progress.IsCompleted)
}

func TestUpdateProgressIdempotent(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	user, token := createUser(t, "Student", "student@example.com")

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)

	lessonID := course.Lessons[0].ID
	body := map[string]interface{}{"lesson_id": lessonID}
	doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, body)
	_, status := doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, body)
	assert.Equal(t, fiber.StatusOK, status)

	var progress models.CourseProgress
	database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress)
	assert.Len(t, progress.CompletedLessons, 1)
}

func TestUpdateProgressWithoutEnrollment(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	_, token := createUser(t, "Student", "student@example.com")

	result, status := doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, map[string]interface{}{
		"lesson_id": course.Lessons[0].ID,
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Enrollment not found", result["message"])
}

func TestCertificateRequiresCompletion(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	_, token := createUser(t, "Student", "student@example.com")

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)

	// Only one of two lessons complete
	doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, map[string]interface{}{
		"lesson_id": course.Lessons[0].ID,
	})

	_, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d/certificate", course.ID), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCertificateIssued(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	user, token := createUser(t, "Student", "student@example.com")

	doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d", course.ID), token, nil)
	for _, lesson := range course.Lessons {
		doJSON(app, "PUT", fmt.Sprintf("/api/enrollment/%d/progress", course.ID), token, map[string]interface{}{
			"lesson_id": lesson.ID,
		})
	}

	result, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d/certificate", course.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, status)
	data := result["data"].(map[string]interface{})
	assert.NotEmpty(t, data["certificate_number"])

	// Second request conflicts
	_, status = doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d/certificate", course.ID), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	var count int64
	database.Database.Db.Model(&models.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// And it shows up in the listing
	listResult, listStatus := doJSON(app, "GET", "/api/enrollment/certificates", token, nil)
	assert.Equal(t, fiber.StatusOK, listStatus)
	assert.Equal(t, float64(1), listResult["data"].(map[string]interface{})["count"])
}

func TestCertificateWithoutEnrollment(t *testing.T) {
	app := setupTestApp(t)
	course := createCourseWithLessons(t, "Go Basics", 2)
	_, token := createUser(t, "Student", "student@example.com")

	_, status := doJSON(app, "POST", fmt.Sprintf("/api/enrollment/%d/certificate", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}
