package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"review_insights/internal/domain"
)

// ---- fakes ----

type memStore struct {
	mu          sync.Mutex
	reviews     map[string]domain.Review
	restaurants map[string]domain.Restaurant
	listCalls   int
	aggWrites   int
}

func newMemStore(rs ...domain.Restaurant) *memStore {
	m := &memStore{reviews: map[string]domain.Review{}, restaurants: map[string]domain.Restaurant{}}
	for _, r := range rs {
		m.restaurants[r.ID] = r
	}
	return m
}

func (m *memStore) InsertReview(ctx context.Context, r domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.reviews {
		if x.RestaurantID == r.RestaurantID && x.UserID == r.UserID {
			return domain.ErrDuplicateReview
		}
	}
	m.reviews[r.ID] = r
	return nil
}

func (m *memStore) UpdateReview(ctx context.Context, r domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.reviews[r.ID] = r
	return nil
}

func (m *memStore) GetReview(ctx context.Context, id string) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memStore) FindReviewByAuthor(ctx context.Context, restaurantID, userID string) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.RestaurantID == restaurantID && r.UserID == userID {
			return r, nil
		}
	}
	return domain.Review{}, domain.ErrNotFound
}

func (m *memStore) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	var out []domain.Review
	for _, r := range m.reviews {
		if f.RestaurantID != "" && r.RestaurantID != f.RestaurantID {
			continue
		}
		if len(f.Visibility) > 0 && !hasVisibility(f.Visibility, r.Visibility) {
			continue
		}
		if !f.From.IsZero() && r.ReviewDate.Before(f.From) {
			continue
		}
		if !f.Until.IsZero() && !r.ReviewDate.Before(f.Until) {
			continue
		}
		if f.MaxRating != nil && r.Rating > *f.MaxRating {
			continue
		}
		if f.OverallBelow != nil && r.Sentiment.Overall >= *f.OverallBelow {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.NewestFirst {
			return out[i].ReviewDate.After(out[j].ReviewDate)
		}
		return out[i].ReviewDate.Before(out[j].ReviewDate)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func hasVisibility(vs []domain.Visibility, v domain.Visibility) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

func (m *memStore) GetRestaurant(ctx context.Context, id string) (domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.restaurants[id]
	if !ok {
		return domain.Restaurant{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memStore) ListRestaurantsByID(ctx context.Context, ids []string) ([]domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Restaurant
	for _, id := range ids {
		if r, ok := m.restaurants[id]; ok && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) UpdateAggregateRating(ctx context.Context, id string, agg domain.AggregateRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.restaurants[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Rating = agg
	m.restaurants[id] = r
	m.aggWrites++
	return nil
}

func (m *memStore) restaurant(id string) domain.Restaurant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restaurants[id]
}

func (m *memStore) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// jsonCache round-trips values through JSON like the Redis adapter does.
type jsonCache struct {
	store map[string][]byte
	dels  []string
}

func (c *jsonCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *jsonCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *jsonCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type externalFunc func(ctx context.Context, text string) (map[string]any, error)

func (f externalFunc) AnalyzeReview(ctx context.Context, text string) (map[string]any, error) {
	return f(ctx, text)
}

func ptr[T any](v T) *T { return &v }
