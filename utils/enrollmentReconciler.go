package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/rohitpatel0011/course-platform/database"
	"github.com/rohitpatel0011/course-platform/models"

	"github.com/robfig/cron/v3"
)

// logReconciler logs reconciler events with timestamp
func logReconciler(message string) {
	log.Printf("[ENROLL-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileEnrollmentCounters recomputes every course's students_enrolled
// from the progress table. The enroll path writes the progress record and
// the counter separately, so a crash between the two leaves the counter
// behind the real enrollment count; this job repairs that drift.
func ReconcileEnrollmentCounters() {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Find(&courses).Error; err != nil {
		logReconciler("Error fetching courses: " + err.Error())
		return
	}

	repaired := 0
	for _, course := range courses {
		var actual int64
		if err := db.Model(&models.CourseProgress{}).Where("course_id = ?", course.ID).Count(&actual).Error; err != nil {
			logReconciler("Error counting enrollments: " + err.Error())
			continue
		}

		if int(actual) != course.StudentsEnrolled {
			if err := db.Model(&models.Course{}).Where("id = ?", course.ID).
				UpdateColumn("students_enrolled", actual).Error; err != nil {
				logReconciler("Error repairing counter: " + err.Error())
				continue
			}
			repaired++
		}
	}

	if repaired > 0 {
		logReconciler(fmt.Sprintf("Repaired enrollment counters for %d courses", repaired))
	}
}

// StartEnrollmentReconciler schedules the hourly counter reconciliation
func StartEnrollmentReconciler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", ReconcileEnrollmentCounters); err != nil {
		log.Fatalf("Failed to schedule enrollment reconciler: %v", err)
	}

	c.Start()
	logReconciler("Scheduler started")
	return c
}
