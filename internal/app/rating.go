package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"review_insights/internal/adapters/observability"
	"review_insights/internal/analytics"
	"review_insights/internal/domain"
)

// RatingService keeps a restaurant's stored aggregate in line with its
// reviews. Review use cases call Recompute explicitly after every mutation.
type RatingService struct {
	reviews     domain.ReviewRepository
	restaurants domain.RestaurantRepository
	now         func() time.Time
}

func NewRatingService(rv domain.ReviewRepository, rs domain.RestaurantRepository) *RatingService {
	return &RatingService{reviews: rv, restaurants: rs, now: time.Now}
}

// Recompute reloads every counted review and overwrites the aggregate.
// Concurrent recomputes for one restaurant are last-writer-wins.
func (s *RatingService) Recompute(ctx context.Context, restaurantID string) (domain.AggregateRating, error) {
	agg, err := s.recompute(ctx, restaurantID)
	observability.ObserveRecompute(err)
	if err != nil {
		return domain.AggregateRating{}, err
	}
	log.Info().Str("restaurant_id", restaurantID).Int("review_count", agg.ReviewCount).
		Float64("overall", agg.Overall).Msg("aggregate rating recomputed")
	return agg, nil
}

func (s *RatingService) recompute(ctx context.Context, restaurantID string) (domain.AggregateRating, error) {
	list, err := s.reviews.ListReviews(ctx, domain.ReviewFilter{
		RestaurantID: restaurantID,
		Visibility:   []domain.Visibility{domain.VisibilityPublic},
	})
	if err != nil {
		return domain.AggregateRating{}, fmt.Errorf("load reviews: %w", err)
	}
	agg := analytics.ComputeAggregate(list, s.now().UTC())
	if err := s.restaurants.UpdateAggregateRating(ctx, restaurantID, agg); err != nil {
		return domain.AggregateRating{}, fmt.Errorf("store aggregate: %w", err)
	}
	return agg, nil
}
