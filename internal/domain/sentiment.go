package domain

import "encoding/json"

type Category string

const (
	CategoryFood     Category = "food"
	CategoryService  Category = "service"
	CategoryAmbiance Category = "ambiance"
	CategoryValue    Category = "value"
)

// Categories is the fixed evaluation order used by every aggregation.
var Categories = []Category{CategoryFood, CategoryService, CategoryAmbiance, CategoryValue}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type Intensity string

const (
	IntensityNeutral  Intensity = "neutral"
	IntensityMild     Intensity = "mild"
	IntensityModerate Intensity = "moderate"
	IntensityStrong   Intensity = "strong"
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityNeutral, IntensityMild, IntensityModerate, IntensityStrong:
		return true
	}
	return false
}

type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// CategoryScores holds per-category sentiment; nil means no signal for that category.
type CategoryScores struct {
	Food     *float64 `json:"food"`
	Service  *float64 `json:"service"`
	Ambiance *float64 `json:"ambiance"`
	Value    *float64 `json:"value"`
}

func (c CategoryScores) Get(cat Category) *float64 {
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
	return nil
}

func (c *CategoryScores) Set(cat Category, v *float64) {
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

type SentimentPhrase struct {
	Text      string   `json:"text"`
	Sentiment Polarity `json:"sentiment"`
	Score     float64  `json:"score"`
}

// SentimentProfile is the per-review analysis result persisted with the review.
type SentimentProfile struct {
	Overall          float64           `json:"overall"`
	Intensity        Intensity         `json:"intensity"`
	Categories       CategoryScores    `json:"categories"`
	Keywords         []string          `json:"keywords"`
	SentimentPhrases []SentimentPhrase `json:"sentimentPhrases"`
}

// MarshalJSON emits empty lists as [] rather than null.
func (p SentimentProfile) MarshalJSON() ([]byte, error) {
	type alias SentimentProfile
	out := alias(p)
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	if out.SentimentPhrases == nil {
		out.SentimentPhrases = []SentimentPhrase{}
	}
	if out.Intensity == "" {
		out.Intensity = IntensityNeutral
	}
	return json.Marshal(out)
}
