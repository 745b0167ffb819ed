package domain

import "time"

type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// RatingDistribution counts reviews per integer star, keys 1..5.
type RatingDistribution map[int]int

type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type PhraseSet struct {
	Positive []SentimentPhrase `json:"positive"`
	Negative []SentimentPhrase `json:"negative"`
}

type TrendPoint struct {
	Period       string  `json:"period"` // YYYY-MM
	AvgSentiment float64 `json:"avgSentiment"`
	AvgRating    float64 `json:"avgRating"`
	ReviewCount  int     `json:"reviewCount"`
}

// SentimentSnapshot is computed per request from a window of public reviews.
type SentimentSnapshot struct {
	Total                 int                   `json:"total"`
	PeriodLabel           string                `json:"periodLabel"`
	OverallSentiment      float64               `json:"overallSentiment"`
	Categories            CategoryScores        `json:"categories"`
	SentimentDistribution SentimentDistribution `json:"sentimentDistribution"`
	RatingDistribution    RatingDistribution    `json:"ratingDistribution"`
	Keywords              []KeywordCount        `json:"keywords"`
	SentimentPhrases      PhraseSet             `json:"sentimentPhrases"`
	Trends                []TrendPoint          `json:"trends"`
}

type ImprovementArea struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

type IssueCount struct {
	Issue      string  `json:"issue"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ReviewExample struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    float64   `json:"rating"`
	Date      time.Time `json:"date"`
	Sentiment float64   `json:"sentiment"`
}

type ImprovementReport struct {
	ImprovementAreas      []ImprovementArea            `json:"improvementAreas"`
	CommonIssues          map[Category][]IssueCount    `json:"commonIssues"`
	SuggestionsByCategory map[Category][]string        `json:"suggestionsByCategory"`
	ReviewCount           int                          `json:"reviewCount"`
	ReviewExamples        map[Category][]ReviewExample `json:"reviewExamples"`
}

type ComparisonEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cuisine     []string `json:"cuisine"`
	PriceRange  string   `json:"priceRange"`
	Location    string   `json:"location"`
	Score       float64  `json:"score"`
	ReviewCount int      `json:"reviewCount"`
}
