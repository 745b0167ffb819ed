package domain

import "time"

type Restaurant struct {
	ID         string
	OwnerID    string
	Name       string
	Cuisine    []string
	PriceRange string
	City       string
	IsActive   bool
	Rating     AggregateRating
}

// AggregateRating is derived from the restaurant's public reviews and is never
// edited directly.
type AggregateRating struct {
	Overall     float64         `json:"overall"` // 0..5
	Categories  CategoryRatings `json:"categories"`
	ReviewCount int             `json:"reviewCount"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// CategoryRatings are on the 0..5 star scale; 0 when no review had a signal.
type CategoryRatings struct {
	Food     float64 `json:"food"`
	Service  float64 `json:"service"`
	Ambiance float64 `json:"ambiance"`
	Value    float64 `json:"value"`
}

func (c CategoryRatings) Get(cat Category) float64 {
	switch cat {
	case CategoryFood:
		return c.Food
	case CategoryService:
		return c.Service
	case CategoryAmbiance:
		return c.Ambiance
	case CategoryValue:
		return c.Value
	}
	return 0
}

func (c *CategoryRatings) Set(cat Category, v float64) {
	switch cat {
	case CategoryFood:
		c.Food = v
	case CategoryService:
		c.Service = v
	case CategoryAmbiance:
		c.Ambiance = v
	case CategoryValue:
		c.Value = v
	}
}
