package repositories

import (
	"context"

	"github.com/coursehub/elearning-service/internal/models"
)

// EnrollmentRepository maintains the enrollment ledger. Create relies
// on the storage-level unique constraint on (user_id, course_id) as
// the authoritative duplicate guard and surfaces the violation as
// gorm.ErrDuplicatedKey.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Enrollment, error)
	ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)

	// ListByUser returns the denormalized enrollment views for a
	// student, most recent enrollment first.
	ListByUser(ctx context.Context, userID uint) ([]*models.EnrollmentView, error)
	// ListRoster returns the students enrolled in a course.
	ListRoster(ctx context.Context, courseID uint) ([]*RosterRow, error)

	UpdateProgress(ctx context.Context, userID, courseID uint, progress float64) error
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

// ApplicationRepository records accepted instructor applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.InstructorApplication) error
	ExistsByUser(ctx context.Context, userID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.InstructorApplication, error)
}
