package services

import (
	"context"
	"errors"
	"testing"

	"github.com/coursehub/elearning-service/internal/events"
	"github.com/coursehub/elearning-service/internal/models"
)

func TestInstructorService_Apply(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInstructorService(env.repo, env.publisher, env.logger)
	ctx := context.Background()

	student := env.createUser(t, "student@example.com", models.RoleStudent)

	user, err := svc.Apply(ctx, student.ID, &InstructorApplyRequest{TermsAccepted: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if user.Role != models.RoleInstructor {
		t.Errorf("Expected instructor role, got %s", user.Role)
	}

	reloaded, err := env.repo.User().GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Role != models.RoleInstructor {
		t.Errorf("Role flip not persisted, got %s", reloaded.Role)
	}

	exists, err := env.repo.Application().ExistsByUser(ctx, student.ID)
	if err != nil {
		t.Fatalf("ExistsByUser failed: %v", err)
	}
	if !exists {
		t.Error("Application row should be recorded")
	}

	published := env.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventInstructorPromoted {
		t.Errorf("Expected one %s event, got %+v", events.EventInstructorPromoted, published)
	}
}

func TestInstructorService_ApplyWithoutTerms(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInstructorService(env.repo, env.publisher, env.logger)

	student := env.createUser(t, "student@example.com", models.RoleStudent)

	_, err := svc.Apply(context.Background(), student.ID, &InstructorApplyRequest{TermsAccepted: false})
	if !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("Expected ErrTermsNotAccepted, got %v", err)
	}

	reloaded, err := env.repo.User().GetByID(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Role != models.RoleStudent {
		t.Errorf("Role must be unchanged after rejected application, got %s", reloaded.Role)
	}
}

func TestInstructorService_ApplyTwice(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInstructorService(env.repo, env.publisher, env.logger)
	ctx := context.Background()

	student := env.createUser(t, "student@example.com", models.RoleStudent)

	if _, err := svc.Apply(ctx, student.ID, &InstructorApplyRequest{TermsAccepted: true}); err != nil {
		t.Fatalf("First apply failed: %v", err)
	}

	_, err := svc.Apply(ctx, student.ID, &InstructorApplyRequest{TermsAccepted: true})
	if !errors.Is(err, ErrAlreadyInstructor) {
		t.Fatalf("Expected ErrAlreadyInstructor, got %v", err)
	}

	applications, err := env.repo.Application().ListByUser(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(applications) != 1 {
		t.Errorf("Expected exactly 1 application, got %d", len(applications))
	}
}
