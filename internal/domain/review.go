package domain

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityDeleted Visibility = "deleted"
)

type Review struct {
	ID           string
	RestaurantID string
	UserID       string
	Rating       float64 // 1..5
	Text         string
	ReviewDate   time.Time
	Sentiment    SentimentProfile
	Visibility   Visibility
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReviewFilter narrows ListReviews. Zero values mean "no constraint".
type ReviewFilter struct {
	RestaurantID string
	Visibility   []Visibility
	From, Until  time.Time // [From, Until)
	MaxRating    *float64
	OverallBelow *float64
	NewestFirst  bool
	Limit        int
}

type NewReview struct {
	RestaurantID string  `json:"restaurant"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
}

// ReviewPatch carries the editable fields of a review; nil means unchanged.
type ReviewPatch struct {
	Rating     *float64    `json:"rating,omitempty"`
	Text       *string     `json:"text,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
}
