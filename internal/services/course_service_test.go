package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursehub/elearning-service/internal/models"
)

func TestCourseService_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)

	resp, err := svc.Create(ctx, &CreateCourseRequest{
		Title: "Distributed Systems",
		Price: 99,
	}, instructor.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.InstructorID != instructor.ID {
		t.Errorf("Expected instructor %d, got %d", instructor.ID, resp.InstructorID)
	}
	if !resp.CanEdit {
		t.Error("Creator should be able to edit")
	}

	got, err := svc.GetByID(ctx, resp.ID, instructor.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "Distributed Systems" {
		t.Errorf("Expected title preserved, got %q", got.Title)
	}
}

func TestCourseService_CreateInvalidTitle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)

	_, err := svc.Create(context.Background(), &CreateCourseRequest{
		Title: "ab",
		Price: 10,
	}, instructor.ID)

	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("Expected validation errors, got %v", err)
	}
}

func TestCourseService_UpdateByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com", models.RoleInstructor)
	other := env.createUser(t, "other@example.com", models.RoleInstructor)
	course := env.createCourse(t, owner.ID, "Original Title")

	newTitle := "Hijacked Title"
	_, err := svc.Update(ctx, course.ID, &UpdateCourseRequest{Title: &newTitle}, other.ID)

	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}
	if permissionError.UserID != other.ID || permissionError.ResourceID != course.ID {
		t.Errorf("PermissionError context wrong: %+v", permissionError)
	}

	// The course must be untouched after a denied update.
	reloaded, err := env.repo.Course().GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Title != "Original Title" {
		t.Errorf("Expected title unchanged, got %q", reloaded.Title)
	}
}

func TestCourseService_UpdateMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)

	instructor := env.createUser(t, "teach@example.com", models.RoleInstructor)

	newTitle := "Whatever Title"
	_, err := svc.Update(context.Background(), 9999, &UpdateCourseRequest{Title: &newTitle}, instructor.ID)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_DeleteByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com", models.RoleInstructor)
	other := env.createUser(t, "other@example.com", models.RoleInstructor)
	course := env.createCourse(t, owner.ID, "Protected Course")

	err := svc.Delete(ctx, course.ID, other.ID)
	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}

	if _, err := env.repo.Course().GetByID(ctx, course.ID); err != nil {
		t.Errorf("Course should still exist after denied delete: %v", err)
	}
}

func TestCourseService_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCourseService(env.repo, env.publisher, env.logger, env.validator)
	ctx := context.Background()

	one := env.createUser(t, "one@example.com", models.RoleInstructor)
	two := env.createUser(t, "two@example.com", models.RoleInstructor)
	env.createCourse(t, one.ID, "Go Basics")
	env.createCourse(t, one.ID, "Go Advanced")
	env.createCourse(t, two.ID, "Rust Basics")

	resp, err := svc.List(ctx, CourseListFilters{InstructorID: &one.ID}, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Expected 2 courses for instructor, got %d", resp.Total)
	}

	resp, err = svc.List(ctx, CourseListFilters{Query: "rust"}, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Expected 1 course matching query, got %d", resp.Total)
	}
}
