package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/coursehub/elearning-service/internal/cache"
	"github.com/coursehub/elearning-service/internal/models"
	"github.com/coursehub/elearning-service/internal/repositories"
)

type CategoryPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCategoryPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CategoryRepository {
	return &CategoryPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CategoryPostgreSQL) Create(ctx context.Context, category *models.Category) error {
	if err := c.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	if c.cacheManager != nil {
		cache.InvalidateCategoryCache(ctx, c.cacheManager)
	}
	return nil
}

func (c *CategoryPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := c.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (c *CategoryPostgreSQL) List(ctx context.Context) ([]*models.Category, error) {
	fetch := func() (interface{}, error) {
		var dbCategories []*models.Category
		err := c.db.WithContext(ctx).Order("name ASC").Find(&dbCategories).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return dbCategories, nil
	}

	if c.cacheManager == nil {
		categories, err := fetch()
		if err != nil {
			return nil, err
		}
		return categories.([]*models.Category), nil
	}

	var categories []*models.Category
	if err := c.cacheManager.Category.CacheOrExecute(ctx, "list:all", &categories, cache.CategoryCacheConfig.TTL, fetch); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoryPostgreSQL) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}
