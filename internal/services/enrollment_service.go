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
	"github.com/coursehub/elearning-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Enroll appends a row to the ledger. The identity always comes from
// the authenticated caller, never from the payload. Concurrent
// duplicate attempts are resolved by the unique constraint on
// (user_id, course_id): exactly one insert wins, the rest surface as
// ErrAlreadyEnrolled.
func (s *enrollmentService) Enroll(ctx context.Context, userID uint, req *EnrollRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	courseID := req.CourseID

	exists, err := s.repo.Course().ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	// Fast path for the common repeat click.
	enrolled, err := s.repo.Enrollment().ExistsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}

	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Student enrolled", "user_id", userID, "course_id", courseID)

	s.publishEvent(ctx, events.NewEvent(events.EventStudentEnrolled, events.EnrollmentEventData{
		UserID:   userID,
		CourseID: courseID,
	}))

	return enrollment, nil
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID uint) ([]*models.EnrollmentView, error) {
	views, err := s.repo.Enrollment().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return views, nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, userID uint, req *ProgressUpdateRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	courseID, progress := req.CourseID, req.Progress

	if err := s.repo.Enrollment().UpdateProgress(ctx, userID, courseID, progress); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventProgressUpdated, events.EnrollmentEventData{
		UserID:   userID,
		CourseID: courseID,
		Progress: progress,
	}))

	enrollment, err := s.repo.Enrollment().GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	return s.repo.Enrollment().ExistsByUserAndCourse(ctx, userID, courseID)
}

func (s *enrollmentService) publishEvent(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"event_type", event.Type)
	}
}
