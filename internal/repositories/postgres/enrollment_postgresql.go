package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

// Create inserts a ledger row. A unique-constraint violation on
// (user_id, course_id) comes back as gorm.ErrDuplicatedKey and is not
// wrapped, so callers can match it with errors.Is.
func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return e.db.WithContext(ctx).Create(enrollment).Error
}

func (e *EnrollmentPostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := e.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}

func (e *EnrollmentPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.EnrollmentView, error) {
	var views []*models.EnrollmentView
	err := e.db.WithContext(ctx).
		Table("enrollments").
		Select(`courses.id AS course_id,
			courses.title AS course_title,
			courses.description,
			courses.price,
			courses.image_url,
			users.username AS instructor_name,
			categories.name AS category_name,
			enrollments.enrolled_at,
			enrollments.progress`).
		Joins("JOIN courses ON courses.id = enrollments.course_id AND courses.deleted_at IS NULL").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Joins("LEFT JOIN categories ON categories.id = courses.category_id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return views, nil
}

func (e *EnrollmentPostgreSQL) ListRoster(ctx context.Context, courseID uint) ([]*repositories.RosterRow, error) {
	var rows []*repositories.RosterRow
	err := e.db.WithContext(ctx).
		Table("enrollments").
		Select(`users.id AS user_id,
			users.username,
			users.email,
			enrollments.enrolled_at,
			enrollments.progress`).
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("enrollments.course_id = ?", courseID).
		Order("enrollments.enrolled_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return rows, nil
}

func (e *EnrollmentPostgreSQL) UpdateProgress(ctx context.Context, userID, courseID uint, progress float64) error {
	result := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("progress", progress)
	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (e *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}

type ApplicationPostgreSQL struct {
	db *gorm.DB
}

func NewApplicationPostgreSQL(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db}
}

func (a *ApplicationPostgreSQL) Create(ctx context.Context, application *models.InstructorApplication) error {
	if err := a.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (a *ApplicationPostgreSQL) ExistsByUser(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.InstructorApplication{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return count > 0, nil
}

func (a *ApplicationPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.InstructorApplication, error) {
	var applications []*models.InstructorApplication
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}
