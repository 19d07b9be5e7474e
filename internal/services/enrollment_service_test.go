package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursehub/elearning-service/internal/events"
	"github.com/coursehub/elearning-service/internal/models"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Intro to Go")

	enrollment, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID})
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if enrollment.UserID != student.ID || enrollment.CourseID != course.ID {
		t.Errorf("Enrollment has wrong identity: %+v", enrollment)
	}
	if enrollment.EnrolledAt.IsZero() {
		t.Error("EnrolledAt should be set")
	}

	published := env.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentEnrolled {
		t.Errorf("Expected one %s event, got %+v", events.EventStudentEnrolled, published)
	}
}

func TestEnrollmentService_EnrollDuplicate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Intro to Go")

	if _, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID}); err != nil {
		t.Fatalf("First enroll failed: %v", err)
	}

	_, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID})
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("Expected ErrAlreadyEnrolled, got %v", err)
	}

	// The ledger must hold exactly one row for the pair.
	var count int64
	if err := env.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 enrollment row, got %d", count)
	}
}

func TestEnrollmentService_EnrollMissingCourseID(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)

	student := env.createUser(t, "student@example.com", models.RoleStudent)

	// A zero course_id is a validation failure, not a missing course.
	_, err := svc.Enroll(context.Background(), student.ID, &EnrollRequest{})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	if errors.Is(err, ErrCourseNotFound) {
		t.Fatal("Zero course_id must not be reported as a missing course")
	}
}

func TestEnrollmentService_EnrollMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)

	student := env.createUser(t, "student@example.com", models.RoleStudent)

	_, err := svc.Enroll(context.Background(), student.ID, &EnrollRequest{CourseID: 9999})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_ListByUserOrder(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	first := env.createCourse(t, instructor.ID, "First Course")
	second := env.createCourse(t, instructor.ID, "Second Course")

	if _, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: first.ID}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if _, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: second.ID}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	views, err := svc.ListByUser(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 enrollments, got %d", len(views))
	}
	if views[0].EnrolledAt.Before(views[1].EnrolledAt) {
		t.Error("Expected most recent enrollment first")
	}
	if views[0].InstructorName != instructor.Username {
		t.Errorf("Expected instructor name %q, got %q", instructor.Username, views[0].InstructorName)
	}
}

func TestEnrollmentService_UpdateProgress(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Intro to Go")

	if _, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	enrollment, err := svc.UpdateProgress(ctx, student.ID, &ProgressUpdateRequest{CourseID: course.ID, Progress: 62.5})
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if enrollment.Progress != 62.5 {
		t.Errorf("Expected progress 62.5, got %v", enrollment.Progress)
	}

	_, err = svc.UpdateProgress(ctx, student.ID, &ProgressUpdateRequest{CourseID: 9999, Progress: 10})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("Expected ErrNotEnrolled, got %v", err)
	}
}

func TestEnrollmentService_UpdateProgressOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Intro to Go")

	if _, err := svc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	for _, progress := range []float64{-1, 150} {
		_, err := svc.UpdateProgress(ctx, student.ID, &ProgressUpdateRequest{CourseID: course.ID, Progress: progress})
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("Progress %v: expected ValidationErrors, got %v", progress, err)
		}
	}

	// The stored value must be untouched.
	stored, err := env.repo.Enrollment().GetByUserAndCourse(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("GetByUserAndCourse failed: %v", err)
	}
	if stored.Progress != 0 {
		t.Errorf("Expected progress to stay 0, got %v", stored.Progress)
	}
}
