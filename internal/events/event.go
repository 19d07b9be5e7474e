package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published to the platform event bus.
const (
	EventUserRegistered     = "user.registered"
	EventInstructorPromoted = "instructor.promoted"
	EventCourseCreated      = "course.created"
	EventCourseUpdated      = "course.updated"
	EventCourseDeleted      = "course.deleted"
	EventStudentEnrolled    = "enrollment.created"
	EventProgressUpdated    = "enrollment.progress_updated"
)

// Event is the envelope for every message on the bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh ID and current timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "elearning-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events to the bus. Publishing is
// best-effort from the caller's perspective; a failed publish must
// never roll back the state change that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// EnrollmentEventData is the payload for enrollment events.
type EnrollmentEventData struct {
	UserID   uint    `json:"user_id"`
	CourseID uint    `json:"course_id"`
	Progress float64 `json:"progress,omitempty"`
}

// CourseEventData is the payload for course lifecycle events.
type CourseEventData struct {
	CourseID     uint   `json:"course_id"`
	InstructorID uint   `json:"instructor_id"`
	Title        string `json:"title,omitempty"`
}

// UserEventData is the payload for user lifecycle events.
type UserEventData struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}
