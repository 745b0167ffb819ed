package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"review_insights/internal/app"
	"review_insights/internal/domain"
)

type harness struct {
	store     *memStore
	cache     *jsonCache
	analytics *app.AnalyticsService
	reviews   *app.ReviewService
}

func newHarness(rs ...domain.Restaurant) *harness {
	store := newMemStore(rs...)
	cache := &jsonCache{}
	an := app.NewAnalysisService(nil, nil, 0)
	ratings := app.NewRatingService(store, store)
	ana := app.NewAnalyticsService(store, store, cache, 5*time.Minute)
	return &harness{
		store:     store,
		cache:     cache,
		analytics: ana,
		reviews:   app.NewReviewService(store, store, an, ratings, ana),
	}
}

var (
	owner = domain.Actor{UserID: "owner-1", Role: domain.RoleOwner}
	alice = domain.Actor{UserID: "alice", Role: domain.RoleUser}
	bob   = domain.Actor{UserID: "bob", Role: domain.RoleUser}
	admin = domain.Actor{UserID: "root", Role: domain.RoleAdmin}
)

func trattoria() domain.Restaurant {
	return domain.Restaurant{ID: "r1", OwnerID: owner.UserID, Name: "Trattoria", City: "Rome", IsActive: true}
}

func TestCreateReview_UpdatesAggregate(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()

	r, err := h.reviews.Create(ctx, alice, domain.NewReview{RestaurantID: "r1", Rating: 5, Text: "  " + sampleText + " "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" || r.Visibility != domain.VisibilityPublic || r.Text != sampleText {
		t.Fatalf("review: %+v", r)
	}
	if r.Sentiment.Overall <= 0.5 || r.Sentiment.Categories.Food == nil {
		t.Fatalf("sentiment: %+v", r.Sentiment)
	}

	agg := h.store.restaurant("r1").Rating
	if agg.ReviewCount != 1 || agg.Overall != 5 || agg.Categories.Food != 4.5 {
		t.Fatalf("aggregate: %+v", agg)
	}

	if _, err := h.reviews.Create(ctx, alice, domain.NewReview{RestaurantID: "r1", Rating: 3, Text: "Second thoughts on it."}); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected duplicate, got %v", err)
	}
}

func TestCreateReview_Rejections(t *testing.T) {
	closed := trattoria()
	closed.ID, closed.IsActive = "r2", false
	h := newHarness(trattoria(), closed)
	ctx := context.Background()

	cases := []struct {
		name  string
		actor domain.Actor
		in    domain.NewReview
		want  error
	}{
		{"anonymous", domain.Actor{}, domain.NewReview{RestaurantID: "r1", Rating: 4, Text: sampleText}, domain.ErrUnauthorized},
		{"rating", alice, domain.NewReview{RestaurantID: "r1", Rating: 6, Text: sampleText}, domain.ErrInvalidInput},
		{"fractional rating", alice, domain.NewReview{RestaurantID: "r1", Rating: 2.5, Text: sampleText}, domain.ErrInvalidInput},
		{"short text", alice, domain.NewReview{RestaurantID: "r1", Rating: 4, Text: "meh"}, domain.ErrInvalidInput},
		{"unknown restaurant", alice, domain.NewReview{RestaurantID: "zz", Rating: 4, Text: sampleText}, domain.ErrNotFound},
		{"inactive restaurant", alice, domain.NewReview{RestaurantID: "r2", Rating: 4, Text: sampleText}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.reviews.Create(ctx, tc.actor, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
	if h.store.aggWrites != 0 {
		t.Fatalf("rejected creates must not touch the aggregate")
	}
}

func TestUpdateAndDeleteReview(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()

	r, err := h.reviews.Create(ctx, alice, domain.NewReview{RestaurantID: "r1", Rating: 5, Text: sampleText})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := h.reviews.Update(ctx, bob, r.ID, domain.ReviewPatch{Rating: ptr(1.0)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other user: %v", err)
	}
	if _, err := h.reviews.Update(ctx, alice, r.ID, domain.ReviewPatch{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty patch: %v", err)
	}
	deleted := domain.VisibilityDeleted
	if _, err := h.reviews.Update(ctx, alice, r.ID, domain.ReviewPatch{Visibility: &deleted}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("visibility=deleted through update: %v", err)
	}

	up, err := h.reviews.Update(ctx, alice, r.ID, domain.ReviewPatch{
		Rating: ptr(2.0),
		Text:   ptr("The waiter was rude and the food was cold."),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.Sentiment.Overall >= 0 {
		t.Fatalf("text change must re-analyze: %+v", up.Sentiment)
	}
	agg := h.store.restaurant("r1").Rating
	if agg.Overall != 2 || agg.ReviewCount != 1 {
		t.Fatalf("aggregate after update: %+v", agg)
	}

	// admin may delete anyone's review; the aggregate resets with the last one gone
	if err := h.reviews.Delete(ctx, admin, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	agg = h.store.restaurant("r1").Rating
	if agg.ReviewCount != 0 || agg.Overall != 0 || agg.Categories != (domain.CategoryRatings{}) {
		t.Fatalf("aggregate after delete: %+v", agg)
	}
	if _, err := h.reviews.Get(ctx, alice, r.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleted review should be gone: %v", err)
	}
	if err := h.reviews.Delete(ctx, alice, r.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestPrivateReviewVisibility(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()

	r, _ := h.reviews.Create(ctx, alice, domain.NewReview{RestaurantID: "r1", Rating: 4, Text: sampleText})
	private := domain.VisibilityPrivate
	if _, err := h.reviews.Update(ctx, alice, r.ID, domain.ReviewPatch{Visibility: &private}); err != nil {
		t.Fatal(err)
	}
	if got := h.store.restaurant("r1").Rating.ReviewCount; got != 0 {
		t.Fatalf("private reviews are not counted, got %d", got)
	}

	if _, err := h.reviews.Get(ctx, bob, r.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("bob: %v", err)
	}
	if _, err := h.reviews.Get(ctx, domain.Actor{}, r.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous: %v", err)
	}
	for _, a := range []domain.Actor{alice, admin} {
		if _, err := h.reviews.Get(ctx, a, r.ID); err != nil {
			t.Fatalf("%s: %v", a.UserID, err)
		}
	}
}

func TestReanalyze(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()
	h.store.reviews["old"] = domain.Review{
		ID: "old", RestaurantID: "r1", UserID: "carol", Rating: 4,
		Text: sampleText, Visibility: domain.VisibilityPublic, ReviewDate: time.Now().Add(-time.Hour),
	}
	h.store.reviews["gone"] = domain.Review{
		ID: "gone", RestaurantID: "r1", UserID: "dave", Rating: 1,
		Text: "Awful awful awful food.", Visibility: domain.VisibilityDeleted,
	}

	n, err := h.reviews.Reanalyze(ctx, "r1")
	if err != nil || n != 1 {
		t.Fatalf("reanalyze: n=%d err=%v", n, err)
	}
	if got := h.store.reviews["old"].Sentiment; got.Intensity != domain.IntensityStrong {
		t.Fatalf("not re-analyzed: %+v", got)
	}
	if h.store.reviews["gone"].Sentiment.Overall != 0 {
		t.Fatalf("deleted reviews are skipped")
	}
	if agg := h.store.restaurant("r1").Rating; agg.ReviewCount != 1 || agg.Overall != 4 {
		t.Fatalf("aggregate: %+v", agg)
	}
	if _, err := h.reviews.Reanalyze(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown restaurant: %v", err)
	}
}

func TestSentimentSnapshot_CacheAndInvalidation(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()

	if _, err := h.analytics.Sentiment(ctx, "r1", "2weeks"); !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("period: %v", err)
	}
	if _, err := h.analytics.Sentiment(ctx, "missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("restaurant: %v", err)
	}

	empty, err := h.analytics.Sentiment(ctx, "r1", "")
	if err != nil || empty.Total != 0 || empty.PeriodLabel != "Last 6 months" {
		t.Fatalf("empty snapshot: %+v %v", empty, err)
	}
	calls := h.store.calls()
	if _, err := h.analytics.Sentiment(ctx, "r1", "6months"); err != nil || h.store.calls() != calls {
		t.Fatalf("second read should be served from cache")
	}

	if _, err := h.reviews.Create(ctx, alice, domain.NewReview{RestaurantID: "r1", Rating: 5, Text: sampleText}); err != nil {
		t.Fatal(err)
	}
	snap, err := h.analytics.Sentiment(ctx, "r1", "6months")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Total != 1 || snap.RatingDistribution[5] != 1 || snap.SentimentDistribution.Positive != 100 {
		t.Fatalf("snapshot after create: %+v", snap)
	}
	if len(snap.Trends) != 1 || snap.Categories.Food == nil {
		t.Fatalf("snapshot details: %+v", snap)
	}
}

func TestImprovements(t *testing.T) {
	h := newHarness(trattoria())
	ctx := context.Background()
	now := time.Now().UTC()

	bad := domain.Review{
		ID: "b1", RestaurantID: "r1", UserID: "u1", Rating: 2, Text: "Slow and rude staff.",
		ReviewDate: now.Add(-24 * time.Hour), Visibility: domain.VisibilityPublic,
		Sentiment: domain.SentimentProfile{
			Overall:    -0.6,
			Categories: domain.CategoryScores{Service: ptr(-0.8)},
			Keywords:   []string{"slow", "rude", "staff"},
		},
	}
	old := bad
	old.ID, old.UserID, old.ReviewDate = "b0", "u0", now.AddDate(-1, 0, 0)
	h.store.reviews[bad.ID] = bad
	h.store.reviews[old.ID] = old

	if _, err := h.analytics.Improvements(ctx, domain.Actor{}, "r1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous: %v", err)
	}
	calls := h.store.calls()
	if _, err := h.analytics.Improvements(ctx, bob, "r1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner: %v", err)
	}
	if h.store.calls() != calls {
		t.Fatalf("authorization must happen before loading reviews")
	}

	for _, a := range []domain.Actor{owner, admin} {
		rep, err := h.analytics.Improvements(ctx, a, "r1")
		if err != nil {
			t.Fatalf("%s: %v", a.UserID, err)
		}
		if rep.ReviewCount != 1 || len(rep.ImprovementAreas) != 1 || rep.ImprovementAreas[0].Category != domain.CategoryService {
			t.Fatalf("report: %+v", rep)
		}
		if len(rep.ReviewExamples[domain.CategoryService]) != 1 {
			t.Fatalf("examples: %+v", rep.ReviewExamples)
		}
	}
}

func TestCompare(t *testing.T) {
	a := trattoria()
	a.Rating = domain.AggregateRating{Overall: 4.2, ReviewCount: 10}
	b := domain.Restaurant{ID: "r2", Name: "Bistro", IsActive: true, Rating: domain.AggregateRating{Overall: 4.6}}
	c := domain.Restaurant{ID: "r3", Name: "Closed", IsActive: false}
	h := newHarness(a, b, c)
	ctx := context.Background()

	got, by, err := h.analytics.Compare(ctx, "r1,r2", "")
	if err != nil || by != "overall" || len(got) != 2 || got[0].ID != "r2" {
		t.Fatalf("compare: %+v %s %v", got, by, err)
	}
	if _, _, err := h.analytics.Compare(ctx, "r1,r3", "food"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive restaurant: %v", err)
	}
	if _, _, err := h.analytics.Compare(ctx, "r1", "food"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("one id: %v", err)
	}
	if _, _, err := h.analytics.Compare(ctx, "r1,r2", "vibes"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("category: %v", err)
	}
}
