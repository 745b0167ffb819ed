package analytics

import (
	"time"

	"review_insights/internal/domain"
)

// Counted reports whether r takes part in the restaurant's aggregate rating
// and public analytics.
func Counted(r domain.Review) bool { return r.Visibility == domain.VisibilityPublic }

// ComputeAggregate recomputes a restaurant's rating from scratch over its
// counted reviews. Overall is the mean star rating; each category maps the
// mean non-null sentiment from [-1, 1] onto [0, 5]. Both are rounded to one
// decimal. With no counted reviews every field is 0.
func ComputeAggregate(reviews []domain.Review, now time.Time) domain.AggregateRating {
	agg := domain.AggregateRating{LastUpdated: now}

	var (
		ratingSum float64
		catSum    = make(map[domain.Category]float64, len(domain.Categories))
		catN      = make(map[domain.Category]int, len(domain.Categories))
	)
	for _, r := range reviews {
		if !Counted(r) {
			continue
		}
		agg.ReviewCount++
		ratingSum += r.Rating
		for _, c := range domain.Categories {
			if s := r.Sentiment.Categories.Get(c); s != nil {
				catSum[c] += (*s + 1) * 2.5
				catN[c]++
			}
		}
	}
	if agg.ReviewCount == 0 {
		return agg
	}

	agg.Overall = clampRange(round1(ratingSum/float64(agg.ReviewCount)), 0, 5)
	for _, c := range domain.Categories {
		if catN[c] > 0 {
			agg.Categories.Set(c, clampRange(round1(catSum[c]/float64(catN[c])), 0, 5))
		}
	}
	return agg
}
