package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/events"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
)

type instructorService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewInstructorService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) InstructorService {
	return &instructorService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Apply upgrades a student to instructor. The flow is self-service:
// accepting the terms is the only requirement, and the role flip plus
// the application record commit atomically.
func (s *instructorService) Apply(ctx context.Context, userID uint, req *InstructorApplyRequest) (*models.User, error) {
	if !req.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Role == models.RoleInstructor {
		return nil, ErrAlreadyInstructor
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().UpdateRole(ctx, userID, models.RoleInstructor); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		application := &models.InstructorApplication{
			UserID:        userID,
			TermsAccepted: true,
			AppliedAt:     time.Now().UTC(),
		}
		if err := tx.Application().Create(ctx, application); err != nil {
			return fmt.Errorf("failed to record application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Role = models.RoleInstructor

	s.logger.Info("User promoted to instructor", "user_id", userID)

	event := events.NewEvent(events.EventInstructorPromoted, events.UserEventData{
		UserID: userID,
		Role:   string(models.RoleInstructor),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"event_type", event.Type)
	}

	return user, nil
}
