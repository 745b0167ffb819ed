package app

import (
	"context"
	"fmt"
	"time"

	"review_insights/internal/analytics"
	"review_insights/internal/domain"
)

var cachedPeriods = []analytics.Period{
	analytics.Last30Days, analytics.Last90Days, analytics.Last6Months,
	analytics.LastYear, analytics.AllTime,
}

// AnalyticsService answers the read-only dashboard queries. Sentiment
// snapshots are cached per restaurant and period.
type AnalyticsService struct {
	reviews     domain.ReviewRepository
	restaurants domain.RestaurantRepository
	cache       domain.Cache
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewAnalyticsService(rv domain.ReviewRepository, rs domain.RestaurantRepository, c domain.Cache, ttl time.Duration) *AnalyticsService {
	if c == nil {
		c = noCache{}
	}
	return &AnalyticsService{reviews: rv, restaurants: rs, cache: c, cacheTTL: ttl, now: time.Now}
}

func snapshotKey(restaurantID string, p analytics.Period) string {
	return fmt.Sprintf("sentiment:%s:%s", restaurantID, p)
}

func (s *AnalyticsService) Sentiment(ctx context.Context, restaurantID, period string) (domain.SentimentSnapshot, error) {
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return domain.SentimentSnapshot{}, err
	}
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return domain.SentimentSnapshot{}, err
	}

	key := snapshotKey(restaurantID, p)
	var snap domain.SentimentSnapshot
	if ok, _ := s.cache.Get(ctx, key, &snap); ok {
		return snap, nil
	}

	from, until := p.Window(s.now().UTC())
	list, err := s.reviews.ListReviews(ctx, domain.ReviewFilter{
		RestaurantID: restaurantID,
		Visibility:   []domain.Visibility{domain.VisibilityPublic},
		From:         from,
		Until:        until,
	})
	if err != nil {
		return domain.SentimentSnapshot{}, err
	}
	snap = analytics.BuildSnapshot(list, p)
	_ = s.cache.Set(ctx, key, snap, int(s.cacheTTL.Seconds()))
	return snap, nil
}

// Improvements is restricted to the restaurant's owner and admins; the check
// runs before any review is loaded.
func (s *AnalyticsService) Improvements(ctx context.Context, actor domain.Actor, restaurantID string) (domain.ImprovementReport, error) {
	if actor.Anonymous() {
		return domain.ImprovementReport{}, domain.ErrUnauthorized
	}
	r, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return domain.ImprovementReport{}, err
	}
	if !actor.CanManage(r.OwnerID) {
		return domain.ImprovementReport{}, domain.ErrForbidden
	}

	maxStars, below := 3.0, 0.0
	from, until := analytics.ImprovementWindow.Window(s.now().UTC())
	list, err := s.reviews.ListReviews(ctx, domain.ReviewFilter{
		RestaurantID: restaurantID,
		Visibility:   []domain.Visibility{domain.VisibilityPublic},
		From:         from,
		Until:        until,
		MaxRating:    &maxStars,
		OverallBelow: &below,
		NewestFirst:  true,
	})
	if err != nil {
		return domain.ImprovementReport{}, err
	}
	return analytics.BuildImprovements(list), nil
}

// Compare ranks 2..5 active restaurants by overall or one category. It
// returns the normalized category alongside the ranking.
func (s *AnalyticsService) Compare(ctx context.Context, ids, category string) ([]domain.ComparisonEntry, string, error) {
	list, err := analytics.ParseCompareIDs(ids)
	if err != nil {
		return nil, "", err
	}
	by, err := analytics.ParseCompareCategory(category)
	if err != nil {
		return nil, "", err
	}
	rs, err := s.restaurants.ListRestaurantsByID(ctx, list)
	if err != nil {
		return nil, "", err
	}
	if len(rs) != len(list) {
		return nil, "", fmt.Errorf("one or more restaurants: %w", domain.ErrNotFound)
	}
	return analytics.RankComparison(rs, by), by, nil
}

// InvalidateRestaurant drops every cached snapshot of the restaurant.
func (s *AnalyticsService) InvalidateRestaurant(ctx context.Context, restaurantID string) {
	for _, p := range cachedPeriods {
		_ = s.cache.Del(ctx, snapshotKey(restaurantID, p))
	}
}

type noCache struct{}

func (noCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, any, int) error    { return nil }
func (noCache) Del(context.Context, string) error              { return nil }
