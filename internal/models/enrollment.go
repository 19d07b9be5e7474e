package models

import (
	"time"
)

// Enrollment ties a student to a course. The composite unique index on
// (user_id, course_id) is the authoritative guard against duplicate
// enrollments; application-level pre-checks only exist to produce a
// friendly error before hitting the constraint.
type Enrollment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`

	EnrolledAt time.Time `json:"enrolled_at" gorm:"not null"`
	Progress   float64   `json:"progress" gorm:"not null;default:0"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentView is the denormalized shape returned when listing a
// student's enrollments.
type EnrollmentView struct {
	CourseID       uint      `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	Description    *string   `json:"description"`
	Price          float64   `json:"price"`
	ImageURL       *string   `json:"image_url"`
	InstructorName string    `json:"instructor_name"`
	CategoryName   *string   `json:"category_name"`
	EnrolledAt     time.Time `json:"enrolled_at"`
	Progress       float64   `json:"progress"`
}
