package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/cache"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	c.invalidate(ctx, course.ID)
	return nil
}

// GetByID retrieves a course without relations. Used by ownership
// checks, which must read current database state, so no cache here.
func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

// GetByIDWithDetails retrieves a course with instructor and category
// preloaded, served from cache when possible.
func (c *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) {
	fetch := func() (interface{}, error) {
		var dbCourse models.Course
		err := c.db.WithContext(ctx).
			Preload("Instructor").
			Preload("Category").
			First(&dbCourse, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get course details: %w", err)
		}
		return &dbCourse, nil
	}

	if c.cacheManager == nil {
		course, err := fetch()
		if err != nil {
			return nil, err
		}
		return course.(*models.Course), nil
	}

	var course models.Course
	cacheKey := fmt.Sprintf("id:%d", id)
	if err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, fetch); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	c.invalidate(ctx, course.ID)
	return nil
}

func (c *CoursePostgreSQL) UpdateImage(ctx context.Context, id uint, imageURL string) error {
	result := c.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		return fmt.Errorf("failed to update course image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{})

	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?)", pattern)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query = query.Order(orderClause(filters.SortBy, filters.SortOrder))
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var courses []*models.Course
	if err := query.Preload("Instructor").Preload("Category").Find(&courses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (c *CoursePostgreSQL) ListByInstructor(ctx context.Context, instructorID uint) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return count > 0, nil
}

func (c *CoursePostgreSQL) GetStats(ctx context.Context, id uint) (*repositories.CourseStats, error) {
	stats := &repositories.CourseStats{}

	err := c.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", id).
		Count(&stats.EnrollmentCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	if stats.EnrollmentCount > 0 {
		err = c.db.WithContext(ctx).Model(&models.Enrollment{}).
			Where("course_id = ?", id).
			Select("COALESCE(AVG(progress), 0)").
			Scan(&stats.AverageProgress).Error
		if err != nil {
			return nil, fmt.Errorf("failed to average progress: %w", err)
		}
	}

	err = c.db.WithContext(ctx).Model(&models.CourseContent{}).
		Where("course_id = ?", id).
		Count(&stats.ContentCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count contents: %w", err)
	}

	return stats, nil
}

func (c *CoursePostgreSQL) invalidate(ctx context.Context, courseID uint) {
	if c.cacheManager == nil {
		return
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, courseID)
}

func orderClause(sortBy, sortOrder string) string {
	switch sortBy {
	case "title", "price", "created_at":
	default:
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
