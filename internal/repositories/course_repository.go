package repositories

import (
	"context"

	"github.com/coursehub/elearning-service/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetByIDWithDetails preloads instructor and category relations.
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateImage(ctx context.Context, id uint, imageURL string) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	ListByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error)

	ExistsByID(ctx context.Context, id uint) (bool, error)
	GetStats(ctx context.Context, id uint) (*CourseStats, error)
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.CourseContent) error
	GetByID(ctx context.Context, id uint) (*models.CourseContent, error)
	// GetWithCourse resolves content and its parent course's
	// instructor in a single consistent read, so the two-hop
	// ownership check cannot race a concurrent course change.
	GetWithCourse(ctx context.Context, id uint) (*models.CourseContent, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseContent, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
