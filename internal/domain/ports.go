package domain

import "context"

type ReviewRepository interface {
	// Write paths
	InsertReview(ctx context.Context, r Review) error
	UpdateReview(ctx context.Context, r Review) error

	// Read paths
	GetReview(ctx context.Context, id string) (Review, error)
	FindReviewByAuthor(ctx context.Context, restaurantID, userID string) (Review, error)
	ListReviews(ctx context.Context, f ReviewFilter) ([]Review, error)
}

type RestaurantRepository interface {
	GetRestaurant(ctx context.Context, id string) (Restaurant, error)
	// ListRestaurantsByID returns only active restaurants; missing ids are skipped.
	ListRestaurantsByID(ctx context.Context, ids []string) ([]Restaurant, error)
	UpdateAggregateRating(ctx context.Context, id string, agg AggregateRating) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ExternalAnalyzer is a remote, possibly unavailable sentiment provider. It
// returns the decoded response object as-is; shaping it into a
// SentimentProfile is the caller's job.
type ExternalAnalyzer interface {
	AnalyzeReview(ctx context.Context, text string) (map[string]any, error)
}
