package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	Price       float64 `json:"price" gorm:"not null;default:0" validate:"min=0"`
	ImageURL    *string `json:"image_url" gorm:"size:500"`

	// Ownership is fixed at creation and never transferred.
	InstructorID uint  `json:"instructor_id" gorm:"not null;index"`
	CategoryID   *uint `json:"category_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Instructor User      `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// Computed fields (not stored)
	EnrollmentCount int64 `json:"enrollment_count,omitempty" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseContent is a single material item of a course. Authorization
// over content is transitive: the parent course's instructor owns it.
type CourseContent struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CourseID   uint           `json:"course_id" gorm:"not null;index"`
	Title      string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	ContentURL string         `json:"content_url" gorm:"not null;size:500" validate:"required,url,max=500"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (CourseContent) TableName() string {
	return "course_contents"
}
