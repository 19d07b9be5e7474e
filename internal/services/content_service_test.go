package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursehub/elearning-service/internal/models"
)

func TestContentService_CreateByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.repo, env.logger, env.validator)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com", models.RoleInstructor)
	other := env.createUser(t, "other@example.com", models.RoleInstructor)
	course := env.createCourse(t, owner.ID, "Guarded Course")

	req := &CreateContentRequest{
		CourseID:   course.ID,
		Title:      "Lesson 1",
		ContentURL: "https://cdn.example.com/lesson1.mp4",
	}

	_, err := svc.Create(ctx, req, other.ID)
	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}

	content, err := svc.Create(ctx, req, owner.ID)
	if err != nil {
		t.Fatalf("Create by owner failed: %v", err)
	}
	if content.CourseID != course.ID {
		t.Errorf("Content bound to wrong course: %d", content.CourseID)
	}
}

func TestContentService_ListRequiresEnrollmentOrOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.repo, env.logger, env.validator)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com", models.RoleInstructor)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	course := env.createCourse(t, owner.ID, "Members Only")

	if _, err := svc.Create(ctx, &CreateContentRequest{
		CourseID:   course.ID,
		Title:      "Lesson 1",
		ContentURL: "https://cdn.example.com/lesson1.mp4",
	}, owner.ID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.ListByCourse(ctx, course.ID, student.ID)
	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError for non-enrolled student, got %v", err)
	}

	enrollSvc := NewEnrollmentService(env.repo, env.publisher, env.logger, env.validator)
	if _, err := enrollSvc.Enroll(ctx, student.ID, &EnrollRequest{CourseID: course.ID}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	contents, err := svc.ListByCourse(ctx, course.ID, student.ID)
	if err != nil {
		t.Fatalf("ListByCourse after enrolling failed: %v", err)
	}
	if len(contents) != 1 {
		t.Errorf("Expected 1 content item, got %d", len(contents))
	}
}

func TestContentService_DeleteTransitiveOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.repo, env.logger, env.validator)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com", models.RoleInstructor)
	other := env.createUser(t, "other@example.com", models.RoleInstructor)
	course := env.createCourse(t, owner.ID, "Guarded Course")

	content, err := svc.Create(ctx, &CreateContentRequest{
		CourseID:   course.ID,
		Title:      "Lesson 1",
		ContentURL: "https://cdn.example.com/lesson1.mp4",
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Delete(ctx, content.ID, other.ID)
	var permissionError *PermissionError
	if !errors.As(err, &permissionError) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}

	if err := svc.Delete(ctx, content.ID, owner.ID); err != nil {
		t.Fatalf("Delete by owner failed: %v", err)
	}

	err = svc.Delete(ctx, content.ID, owner.ID)
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("Expected ErrContentNotFound after delete, got %v", err)
	}
}
