package utils_test

import (
	"fmt"
	"testing"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/models"
	"github.com/rohitpatel0011/course-platform/utils"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
}

func TestReconcileEnrollmentCounters(t *testing.T) {
	setupTestDb(t)
	db := database.Database.Db

	instructor := models.User{Name: "Instructor", Email: "i@example.com", Password: "x", Role: models.RoleAdmin}
	db.Create(&instructor)

	// Counter drifted behind the actual enrollments
	course := models.Course{Title: "Go Basics", Category: "Programming", InstructorID: instructor.ID, StudentsEnrolled: 0}
	db.Create(&course)

	for i := 0; i < 3; i++ {
		user := models.User{Name: fmt.Sprintf("U%d", i), Email: fmt.Sprintf("u%d@example.com", i), Password: "x"}
		db.Create(&user)
		db.Create(&models.CourseProgress{UserID: user.ID, CourseID: course.ID, CompletedLessons: []uint{}})
	}

	utils.ReconcileEnrollmentCounters()

	var updated models.Course
	db.Where("id = ?", course.ID).First(&updated)
	assert.Equal(t, 3, updated.StudentsEnrolled)
}

func TestReconcileLeavesAccurateCountersAlone(t *testing.T) {
	setupTestDb(t)
	db := database.Database.Db

	instructor := models.User{Name: "Instructor", Email: "i@example.com", Password: "x", Role: models.RoleAdmin}
	db.Create(&instructor)

	course := models.Course{Title: "Watercolors", Category: "Art", InstructorID: instructor.ID, StudentsEnrolled: 1}
	db.Create(&course)

	user := models.User{Name: "U", Email: "u@example.com", Password: "x"}
	db.Create(&user)
	db.Create(&models.CourseProgress{UserID: user.ID, CourseID: course.ID, CompletedLessons: []uint{}})

	utils.ReconcileEnrollmentCounters()

	var updated models.Course
	db.Where("id = ?", course.ID).First(&updated)
	assert.Equal(t, 1, updated.StudentsEnrolled)
}
