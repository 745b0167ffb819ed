package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"review_insights/internal/domain"
)

// Invalidator drops derived data that depends on a restaurant's reviews.
type Invalidator interface {
	InvalidateRestaurant(ctx context.Context, restaurantID string)
}

// ReviewService owns the review lifecycle. Every mutation analyzes text when
// needed, persists, then recomputes the restaurant aggregate and invalidates
// cached analytics.
type ReviewService struct {
	reviews     domain.ReviewRepository
	restaurants domain.RestaurantRepository
	analysis    *AnalysisService
	ratings     *RatingService
	invalidate  Invalidator
	newID       func() string
	now         func() time.Time
}

func NewReviewService(
	rv domain.ReviewRepository,
	rs domain.RestaurantRepository,
	an *AnalysisService,
	rt *RatingService,
	inv Invalidator,
) *ReviewService {
	return &ReviewService{
		reviews:     rv,
		restaurants: rs,
		analysis:    an,
		ratings:     rt,
		invalidate:  inv,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

func validateRating(v float64) error {
	if v < 1 || v > 5 || v != math.Trunc(v) {
		return domain.Invalid("rating", "must be a whole number between 1 and 5")
	}
	return nil
}

func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, in domain.NewReview) (domain.Review, error) {
	if actor.Anonymous() {
		return domain.Review{}, domain.ErrUnauthorized
	}
	if in.RestaurantID == "" {
		return domain.Review{}, domain.Invalid("restaurant", "restaurant id is required")
	}
	if err := validateRating(in.Rating); err != nil {
		return domain.Review{}, err
	}
	text, err := ValidateReviewText(in.Text)
	if err != nil {
		return domain.Review{}, err
	}

	rest, err := s.restaurants.GetRestaurant(ctx, in.RestaurantID)
	if err != nil {
		return domain.Review{}, err
	}
	if !rest.IsActive {
		return domain.Review{}, fmt.Errorf("restaurant %s: %w", rest.ID, domain.ErrNotFound)
	}
	switch _, err := s.reviews.FindReviewByAuthor(ctx, rest.ID, actor.UserID); {
	case err == nil:
		return domain.Review{}, domain.ErrDuplicateReview
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Review{}, err
	}

	out := s.analysis.Analyze(ctx, text)
	now := s.now().UTC()
	r := domain.Review{
		ID:           s.newID(),
		RestaurantID: rest.ID,
		UserID:       actor.UserID,
		Rating:       in.Rating,
		Text:         text,
		ReviewDate:   now,
		Sentiment:    out.Profile,
		Visibility:   domain.VisibilityPublic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.reviews.InsertReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	s.afterChange(ctx, r.RestaurantID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, actor domain.Actor, id string, p domain.ReviewPatch) (domain.Review, error) {
	r, err := s.editable(ctx, actor, id)
	if err != nil {
		return domain.Review{}, err
	}
	if p.Rating == nil && p.Text == nil && p.Visibility == nil {
		return domain.Review{}, domain.Invalid("body", "nothing to update")
	}

	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return domain.Review{}, err
		}
		r.Rating = *p.Rating
	}
	if p.Visibility != nil {
		switch *p.Visibility {
		case domain.VisibilityPublic, domain.VisibilityPrivate:
			r.Visibility = *p.Visibility
		default:
			return domain.Review{}, domain.Invalid("visibility", "must be public or private")
		}
	}
	if p.Text != nil {
		text, err := ValidateReviewText(*p.Text)
		if err != nil {
			return domain.Review{}, err
		}
		if text != r.Text {
			r.Text = text
			r.Sentiment = s.analysis.Analyze(ctx, text).Profile
		}
	}

	r.UpdatedAt = s.now().UTC()
	if err := s.reviews.UpdateReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	s.afterChange(ctx, r.RestaurantID)
	return r, nil
}

// Delete hides the review for good; the row is kept with visibility=deleted.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	r, err := s.editable(ctx, actor, id)
	if err != nil {
		return err
	}
	r.Visibility = domain.VisibilityDeleted
	r.UpdatedAt = s.now().UTC()
	if err := s.reviews.UpdateReview(ctx, r); err != nil {
		return err
	}
	s.afterChange(ctx, r.RestaurantID)
	return nil
}

// Get returns a review. Private reviews are visible to their author and
// admins only; deleted ones are not found.
func (s *ReviewService) Get(ctx context.Context, actor domain.Actor, id string) (domain.Review, error) {
	r, err := s.reviews.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	switch r.Visibility {
	case domain.VisibilityDeleted:
		return domain.Review{}, domain.ErrNotFound
	case domain.VisibilityPrivate:
		if !actor.CanManage(r.UserID) {
			return domain.Review{}, domain.ErrForbidden
		}
	}
	return r, nil
}

// Reanalyze re-runs analysis over every non-deleted review of a restaurant,
// then recomputes its aggregate. It returns the number of reviews updated.
func (s *ReviewService) Reanalyze(ctx context.Context, restaurantID string) (int, error) {
	if _, err := s.restaurants.GetRestaurant(ctx, restaurantID); err != nil {
		return 0, err
	}
	list, err := s.reviews.ListReviews(ctx, domain.ReviewFilter{
		RestaurantID: restaurantID,
		Visibility:   []domain.Visibility{domain.VisibilityPublic, domain.VisibilityPrivate},
	})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range list {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		r.Sentiment = s.analysis.Analyze(ctx, r.Text).Profile
		r.UpdatedAt = s.now().UTC()
		if err := s.reviews.UpdateReview(ctx, r); err != nil {
			return n, fmt.Errorf("update review %s: %w", r.ID, err)
		}
		n++
	}
	if _, err := s.ratings.Recompute(ctx, restaurantID); err != nil {
		return n, err
	}
	if s.invalidate != nil {
		s.invalidate.InvalidateRestaurant(ctx, restaurantID)
	}
	return n, nil
}

func (s *ReviewService) editable(ctx context.Context, actor domain.Actor, id string) (domain.Review, error) {
	if actor.Anonymous() {
		return domain.Review{}, domain.ErrUnauthorized
	}
	r, err := s.reviews.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if r.Visibility == domain.VisibilityDeleted {
		return domain.Review{}, domain.ErrNotFound
	}
	if !actor.CanManage(r.UserID) {
		return domain.Review{}, domain.ErrForbidden
	}
	return r, nil
}

// afterChange runs once the review write is durable. A failed recompute is
// logged, not returned; the next mutation or a reanalyze run repairs it.
func (s *ReviewService) afterChange(ctx context.Context, restaurantID string) {
	if _, err := s.ratings.Recompute(ctx, restaurantID); err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("aggregate recompute failed")
	}
	if s.invalidate != nil {
		s.invalidate.InvalidateRestaurant(ctx, restaurantID)
	}
}
