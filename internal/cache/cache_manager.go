package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// CacheManager groups per-domain cache helpers. Authorization and
// ownership decisions are never cached; only catalog reads are.
type CacheManager struct {
	Course   *CacheHelper
	Category *CacheHelper
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Course:   NewCacheHelper(client, CourseCacheConfig.Prefix),
		Category: NewCacheHelper(client, CategoryCacheConfig.Prefix),
	}
}

// SafeInvalidatePattern invalidates a cache pattern, logging failures
// instead of propagating them; a stale cache entry must never fail a
// write.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging failures.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateCourseCache drops the cached detail view of a course
// after a mutation. Only the per-course detail read is cached.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeDelete(ctx, cm.Course, fmt.Sprintf("id:%d", courseID))
}

// InvalidateCategoryCache drops the cached category listing. Only the
// full list read is cached.
func InvalidateCategoryCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Category, "list:*")
}
