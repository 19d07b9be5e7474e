package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedCourse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheHelper(client, "course:"), mr
}

func TestCacheRoundTrip(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	course := cachedCourse{ID: 5, Title: "Intro to Go"}
	if err := helper.Set(ctx, "id:5", course, time.Minute); err != nil {
		t.Fatalf("set error: %v", err)
	}

	var got cachedCourse
	if err := helper.Get(ctx, "id:5", &got); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got != course {
		t.Fatalf("expected %+v, got %+v", course, got)
	}
}

func TestCacheMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedCourse
	err := helper.Get(context.Background(), "id:404", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "course:")
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedCourse{ID: 1}, time.Minute); err != nil {
		t.Fatalf("set with nil client should no-op, got %v", err)
	}

	var got cachedCourse
	if err := helper.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestInvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"list:1", "list:2", "id:7"} {
		if err := helper.Set(ctx, key, cachedCourse{ID: 7}, time.Minute); err != nil {
			t.Fatalf("set error: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("invalidate error: %v", err)
	}

	if mr.Exists("course:list:1") || mr.Exists("course:list:2") {
		t.Fatalf("expected list keys to be removed")
	}
	if !mr.Exists("course:id:7") {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestCacheOrExecutePopulatesFromFetch(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	fetched := 0
	var got cachedCourse
	err := helper.CacheOrExecute(ctx, "id:9", &got, time.Minute, func() (interface{}, error) {
		fetched++
		return cachedCourse{ID: 9, Title: "Databases"}, nil
	})
	if err != nil {
		t.Fatalf("cache-or-execute error: %v", err)
	}
	if fetched != 1 || got.ID != 9 {
		t.Fatalf("expected fetch to run once, got count=%d value=%+v", fetched, got)
	}
}
