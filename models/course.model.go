package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title            string   `json:"title" gorm:"not null"`
	Description      string   `json:"description" gorm:"type:text"`
	InstructorID     uint     `json:"instructor_id" gorm:"index;not null"`
	Instructor       User     `json:"instructor" gorm:"foreignKey:InstructorID"`
	Price            float64  `json:"price" gorm:"default:0"`
	Category         string   `json:"category" gorm:"index;not null"`
	Thumbnail        string   `json:"thumbnail" gorm:"default:'https://via.placeholder.com/400'"`
	Level            string   `json:"level" gorm:"default:'Beginner'"`
	Rating           float64  `json:"rating" gorm:"default:0"` // Mean of all review ratings
	NumReviews       int      `json:"num_reviews" gorm:"default:0"`
	StudentsEnrolled int      `json:"students_enrolled" gorm:"default:0"`
	Lessons          []Lesson `json:"lessons" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Reviews          []Review `json:"reviews" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Lesson has no lifecycle of its own: rows are replaced wholesale when the
// parent course is updated and removed when it is deleted.
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   string `json:"duration"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Lesson order in course
}

type Review struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	Name     string `json:"name" gorm:"not null"` // Display-name snapshot at review time
	Rating   int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment  string `json:"comment" gorm:"type:text;default:''"`
}
