package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/coursehub/elearning-service/internal/models"
)

func TestReportService_ExportRoster(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.repo, env.logger)
	enrollSvc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	alice := env.createUser(t, "alice@example.com", models.RoleStudent)
	bob := env.createUser(t, "bob@example.com", models.RoleStudent)
	course := env.createCourse(t, instructor.ID, "Popular Course")

	for _, id := range []uint{alice.ID, bob.ID} {
		if _, err := enrollSvc.Enroll(ctx, id, &EnrollRequest{CourseID: course.ID}); err != nil {
			t.Fatalf("Enroll failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportRoster(ctx, course.ID, instructor.ID, &buf); err != nil {
		t.Fatalf("ExportRoster failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Exported file is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	// Header plus one row per student.
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(rows))
	}
}

func TestReportService_ExportRosterDenied(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(env.repo, env.logger)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)
	other := env.createUser(t, "other@example.com", models.RoleInstructor)
	course := env.createCourse(t, instructor.ID, "Private Course")

	var buf bytes.Buffer
	err := svc.ExportRoster(ctx, course.ID, other.ID, &buf)
	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}

	err = svc.ExportRoster(ctx, 9999, instructor.ID, &buf)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}
}
