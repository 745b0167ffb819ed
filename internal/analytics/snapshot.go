package analytics

import (
	"math"
	"sort"

	"review_insights/internal/domain"
)

const (
	maxCloudKeywords  = 15
	maxSnapshotPhrase = 5
	polarityCutoff    = 0.2
)

// EmptySnapshot is the well-formed result for a window without reviews.
func EmptySnapshot(p Period) domain.SentimentSnapshot {
	return domain.SentimentSnapshot{
		PeriodLabel:        p.Label(),
		RatingDistribution: newRatingDistribution(),
		Keywords:           []domain.KeywordCount{},
		SentimentPhrases: domain.PhraseSet{
			Positive: []domain.SentimentPhrase{},
			Negative: []domain.SentimentPhrase{},
		},
		Trends: []domain.TrendPoint{},
	}
}

// BuildSnapshot summarizes the reviews of one window. The caller is
// responsible for selecting the window and visibility.
func BuildSnapshot(reviews []domain.Review, p Period) domain.SentimentSnapshot {
	s := EmptySnapshot(p)
	if len(reviews) == 0 {
		return s
	}
	s.Total = len(reviews)

	var sum float64
	for _, r := range reviews {
		sum += r.Sentiment.Overall
	}
	s.OverallSentiment = round2(sum / float64(len(reviews)))

	s.Categories = categoryMeans(reviews)
	s.SentimentDistribution = sentimentDistribution(reviews)
	s.RatingDistribution = ratingDistribution(reviews)
	s.Keywords = keywordCloud(reviews, maxCloudKeywords)
	s.SentimentPhrases = phrasePool(reviews, maxSnapshotPhrase)
	s.Trends = monthlyTrends(reviews)
	return s
}

func categoryMeans(reviews []domain.Review) domain.CategoryScores {
	var out domain.CategoryScores
	for _, c := range domain.Categories {
		var sum float64
		n := 0
		for _, r := range reviews {
			if v := r.Sentiment.Categories.Get(c); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			m := round2(sum / float64(n))
			out.Set(c, &m)
		}
	}
	return out
}

func sentimentDistribution(reviews []domain.Review) domain.SentimentDistribution {
	var pos, neg, neu int
	for _, r := range reviews {
		switch o := r.Sentiment.Overall; {
		case o > polarityCutoff:
			pos++
		case o < -polarityCutoff:
			neg++
		default:
			neu++
		}
	}
	return domain.SentimentDistribution{
		Positive: percent(pos, len(reviews)),
		Neutral:  percent(neu, len(reviews)),
		Negative: percent(neg, len(reviews)),
	}
}

func newRatingDistribution() domain.RatingDistribution {
	return domain.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}

func ratingDistribution(reviews []domain.Review) domain.RatingDistribution {
	d := newRatingDistribution()
	for _, r := range reviews {
		star := int(math.Round(r.Rating))
		if star >= 1 && star <= 5 {
			d[star]++
		}
	}
	return d
}

// keywordCloud counts keywords across reviews; ties keep first-seen order.
func keywordCloud(reviews []domain.Review, limit int) []domain.KeywordCount {
	out := []domain.KeywordCount{}
	idx := make(map[string]int)
	for _, r := range reviews {
		for _, kw := range r.Sentiment.Keywords {
			if i, ok := idx[kw]; ok {
				out[i].Count++
				continue
			}
			idx[kw] = len(out)
			out = append(out, domain.KeywordCount{Keyword: kw, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func phrasePool(reviews []domain.Review, limit int) domain.PhraseSet {
	set := domain.PhraseSet{Positive: []domain.SentimentPhrase{}, Negative: []domain.SentimentPhrase{}}
	for _, r := range reviews {
		for _, ph := range r.Sentiment.SentimentPhrases {
			switch ph.Sentiment {
			case domain.PolarityPositive:
				set.Positive = append(set.Positive, ph)
			case domain.PolarityNegative:
				set.Negative = append(set.Negative, ph)
			}
		}
	}
	sort.SliceStable(set.Positive, func(i, j int) bool { return set.Positive[i].Score > set.Positive[j].Score })
	sort.SliceStable(set.Negative, func(i, j int) bool { return set.Negative[i].Score < set.Negative[j].Score })
	if len(set.Positive) > limit {
		set.Positive = set.Positive[:limit]
	}
	if len(set.Negative) > limit {
		set.Negative = set.Negative[:limit]
	}
	return set
}

// monthlyTrends buckets by UTC calendar month, ascending, skipping empty months.
func monthlyTrends(reviews []domain.Review) []domain.TrendPoint {
	type bucket struct {
		n                    int
		sentiment, ratingSum float64
	}
	buckets := make(map[string]*bucket)
	for _, r := range reviews {
		key := r.ReviewDate.UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.n++
		b.sentiment += r.Sentiment.Overall
		b.ratingSum += r.Rating
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.TrendPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, domain.TrendPoint{
			Period:       k,
			AvgSentiment: round2(b.sentiment / float64(b.n)),
			AvgRating:    round1(b.ratingSum / float64(b.n)),
			ReviewCount:  b.n,
		})
	}
	return out
}
