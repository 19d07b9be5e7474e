package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
	"github.com/coursehub/elearning-service/internal/validator"
)

type contentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ContentService {
	return &contentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create adds a material item to a course. Ownership of content is
// transitive through the parent course.
func (s *contentService) Create(ctx context.Context, req *CreateContentRequest, userID uint) (*models.CourseContent, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != userID {
		return nil, NewPermissionError(userID, req.CourseID, "course", "add_content", "not the course instructor")
	}

	content := &models.CourseContent{
		CourseID:   req.CourseID,
		Title:      req.Title,
		ContentURL: req.ContentURL,
	}
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		content.Metadata = raw
	}

	if err := s.repo.Content().Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	s.logger.Info("Content created", "content_id", content.ID, "course_id", req.CourseID)
	return content, nil
}

// ListByCourse returns a course's materials to enrolled students and
// to the owning instructor.
func (s *contentService) ListByCourse(ctx context.Context, courseID uint, userID uint) ([]*models.CourseContent, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if course.InstructorID != userID {
		enrolled, err := s.repo.Enrollment().ExistsByUserAndCourse(ctx, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, NewPermissionError(userID, courseID, "course", "view_content", "not enrolled and not the instructor")
		}
	}

	contents, err := s.repo.Content().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return contents, nil
}

// Delete removes a content item after resolving ownership through the
// parent course in a single read.
func (s *contentService) Delete(ctx context.Context, id uint, userID uint) error {
	content, err := s.repo.Content().GetWithCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to get content: %w", err)
	}
	if content.Course.InstructorID != userID {
		return NewPermissionError(userID, id, "content", "delete", "not the course instructor")
	}

	if err := s.repo.Content().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("failed to delete content: %w", err)
	}

	s.logger.Info("Content deleted", "content_id", id, "user_id", userID)
	return nil
}
