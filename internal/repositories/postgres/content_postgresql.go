package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
)

type ContentPostgreSQL struct {
	db *gorm.DB
}

func NewContentPostgreSQL(db *gorm.DB) repositories.ContentRepository {
	return &ContentPostgreSQL{db: db}
}

func (c *ContentPostgreSQL) Create(ctx context.Context, content *models.CourseContent) error {
	if err := c.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (c *ContentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.CourseContent, error) {
	var content models.CourseContent
	if err := c.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &content, nil
}

// GetWithCourse loads the content together with its parent course in a
// single joined statement, so the content and the course's instructor
// come from one consistent read.
func (c *ContentPostgreSQL) GetWithCourse(ctx context.Context, id uint) (*models.CourseContent, error) {
	var content models.CourseContent
	err := c.db.WithContext(ctx).
		Joins("Course").
		First(&content, "course_contents.id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get content with course: %w", err)
	}
	return &content, nil
}

func (c *ContentPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.CourseContent, error) {
	var contents []*models.CourseContent
	err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&contents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return contents, nil
}

func (c *ContentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&models.CourseContent{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
