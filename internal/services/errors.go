package services

import (
	"errors"
	"fmt"

	"github.com/coursehub/elearning-service/internal/validator"
)

// ValidationErrors is re-exported so handlers can match it with
// errors.As without importing the validator package.
type ValidationErrors = validator.ValidationErrors

// Sentinel errors returned by services. Handlers translate these into
// HTTP status codes.
var (
	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	// Users
	ErrUserNotFound = errors.New("user not found")

	// Courses and contents
	ErrCourseNotFound   = errors.New("course not found")
	ErrContentNotFound  = errors.New("content not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryTaken    = errors.New("category name already exists")

	// Enrollment ledger
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrNotEnrolled     = errors.New("not enrolled in this course")

	// Instructor applications
	ErrAlreadyInstructor = errors.New("user is already an instructor")
	ErrTermsNotAccepted  = errors.New("terms must be accepted")
)

// PermissionError carries the identity and resource involved in a
// denied action so the denial can be logged with full context while
// the client only sees the resource, action and reason.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
