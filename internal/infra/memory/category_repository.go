package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"trivia-game-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ContentLoader fetches the category pool from a backing store.
type ContentLoader interface {
	LoadCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryRepository caches the content pool with TTL to avoid repeated DB hits.
type CategoryRepository struct {
	loader ContentLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Category
	expiresAt time.Time
}

func NewCategoryRepository(loader ContentLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		cached := r.cached
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("categories", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			cached := r.cached
			r.mu.RUnlock()
			return cached, nil
		}
		r.mu.RUnlock()

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = categories
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

// ttlWithJitter adds up to 10% jitter to spread expirations.
func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticContentLoader is a loader backed by a fixed pool (useful for tests/demos).
type StaticContentLoader struct {
	categories []domain.Category
}

func NewStaticContentLoader(categories []domain.Category) *StaticContentLoader {
	return &StaticContentLoader{categories: categories}
}

func (l *StaticContentLoader) LoadCategories(context.Context) ([]domain.Category, error) {
	return l.categories, nil
}
