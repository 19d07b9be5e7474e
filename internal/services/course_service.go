package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/events"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
	"github.com/coursehub/elearning-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, instructorID uint) (*CourseResponse, error) {
	s.logger.Info("Creating course", "instructor_id", instructorID, "title", req.Title)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.CategoryID != nil {
		if _, err := s.repo.Category().GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		InstructorID: instructorID,
		CategoryID:   req.CategoryID,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "instructor_id", instructorID)

	s.publishEvent(ctx, events.NewEvent(events.EventCourseCreated, events.CourseEventData{
		CourseID:     course.ID,
		InstructorID: instructorID,
		Title:        course.Title,
	}))

	return &CourseResponse{Course: course, CanEdit: true}, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint, userID uint) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	count, err := s.repo.Enrollment().CountByCourse(ctx, id)
	if err == nil {
		course.EnrollmentCount = count
	}

	resp := &CourseResponse{
		Course:  course,
		CanEdit: userID != 0 && course.InstructorID == userID,
	}
	if userID != 0 {
		enrolled, err := s.repo.Enrollment().ExistsByUserAndCourse(ctx, userID, id)
		if err == nil {
			resp.Enrolled = enrolled
		}
	}
	return resp, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest, userID uint) (*CourseResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.checkCourseOwnership(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.CategoryID != nil {
		if _, err := s.repo.Category().GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		course.CategoryID = req.CategoryID
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id, "user_id", userID)

	s.publishEvent(ctx, events.NewEvent(events.EventCourseUpdated, events.CourseEventData{
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
		Title:        course.Title,
	}))

	return &CourseResponse{Course: course, CanEdit: true}, nil
}

func (s *courseService) UpdateImage(ctx context.Context, id uint, imageURL string, userID uint) error {
	if _, err := s.checkCourseOwnership(ctx, id, userID, "update_image"); err != nil {
		return err
	}

	if err := s.repo.Course().UpdateImage(ctx, id, imageURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to update course image: %w", err)
	}
	return nil
}

func (s *courseService) Delete(ctx context.Context, id uint, userID uint) error {
	course, err := s.checkCourseOwnership(ctx, id, userID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("Course deleted", "course_id", id, "user_id", userID)

	s.publishEvent(ctx, events.NewEvent(events.EventCourseDeleted, events.CourseEventData{
		CourseID:     id,
		InstructorID: course.InstructorID,
	}))

	return nil
}

func (s *courseService) List(ctx context.Context, filters CourseListFilters, userID uint) (*CourseListResponse, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	size := filters.Size
	if size < 1 || size > 100 {
		size = 20
	}

	courses, total, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		InstructorID: filters.InstructorID,
		CategoryID:   filters.CategoryID,
		Query:        filters.Query,
		MinPrice:     filters.MinPrice,
		MaxPrice:     filters.MaxPrice,
		Limit:        size,
		Offset:       (page - 1) * size,
		SortBy:       filters.SortBy,
		SortOrder:    filters.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	responses := make([]*CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = &CourseResponse{
			Course:  course,
			CanEdit: userID != 0 && course.InstructorID == userID,
		}
	}

	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Page:    page,
		Size:    size,
	}, nil
}

func (s *courseService) ListByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error) {
	courses, err := s.repo.Course().ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetStats(ctx context.Context, id uint, userID uint) (*CourseStatsResponse, error) {
	if _, err := s.checkCourseOwnership(ctx, id, userID, "view_stats"); err != nil {
		return nil, err
	}

	stats, err := s.repo.Course().GetStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course stats: %w", err)
	}

	return &CourseStatsResponse{
		CourseID:        id,
		EnrollmentCount: stats.EnrollmentCount,
		AverageProgress: stats.AverageProgress,
		ContentCount:    stats.ContentCount,
	}, nil
}

// checkCourseOwnership loads the course and verifies the caller is
// its instructor. Not-found stays distinct from not-owner so the API
// can answer 404 versus 403.
func (s *courseService) checkCourseOwnership(ctx context.Context, courseID, userID uint, action string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.InstructorID != userID {
		return nil, NewPermissionError(userID, courseID, "course", action, "not the course instructor")
	}
	return course, nil
}

func (s *courseService) publishEvent(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"event_type", event.Type)
	}
}
