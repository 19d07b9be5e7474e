package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Username     string   `json:"username" gorm:"not null;size:100"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;default:student;size:20"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsInstructor reports whether the user may own courses.
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// InstructorApplication records a student's accepted application to
// become an instructor. The row is informational; the authorization
// source of truth is users.role.
type InstructorApplication struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	TermsAccepted bool      `json:"terms_accepted" gorm:"not null"`
	AppliedAt     time.Time `json:"applied_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (InstructorApplication) TableName() string {
	return "instructor_applications"
}
