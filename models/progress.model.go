package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress links one user to one course and tracks which lessons the
// user has completed. The unique index on (user_id, course_id) guarantees at
// most one record per pair.
type CourseProgress struct {
	gorm.Model
	UserID           uint                      `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID         uint                      `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CompletedLessons datatypes.JSONSlice[uint] `json:"completed_lessons"`
	IsCompleted      bool                      `json:"is_completed" gorm:"default:false"`
	User             User                      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course           Course                    `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// HasCompleted reports whether a lesson is already in the completed set.
func (p *CourseProgress) HasCompleted(lessonID uint) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
