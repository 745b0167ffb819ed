package analytics

import (
	"sort"

	"review_insights/internal/domain"
)

const (
	issueCutoff       = -0.2
	exampleCutoff     = -0.3
	maxCommonIssues   = 5
	maxExamplesPerCat = 2
	negativeMaxStars  = 3
)

// ImprovementWindow is the look-back used for improvement reports.
const ImprovementWindow = Last6Months

var suggestionTemplates = map[domain.Category][]string{
	domain.CategoryFood: {
		"Review menu items receiving negative feedback",
		"Implement quality control measures for consistency",
		"Consider ingredient sourcing improvements",
		"Evaluate food preparation processes",
		"Train kitchen staff on quality standards",
	},
	domain.CategoryService: {
		"Provide additional staff training on customer service",
		"Review staffing levels during peak hours",
		"Implement service recovery protocols",
		"Reduce wait times for seating and orders",
		"Improve communication between front and back of house",
	},
	domain.CategoryAmbiance: {
		"Evaluate noise levels and acoustics",
		"Review lighting for appropriate atmosphere",
		"Consider seating arrangement and comfort improvements",
		"Maintain cleanliness standards throughout dining areas",
		"Update décor elements that may appear dated",
	},
	domain.CategoryValue: {
		"Review pricing strategy compared to competitors",
		"Consider portion size adjustments",
		"Introduce value meal options or promotions",
		"Ensure menu pricing reflects perceived value",
		"Implement a customer loyalty program",
	},
}

// IsNegative reports whether r belongs to the improvement review set:
// at most 3 stars and a negative overall sentiment.
func IsNegative(r domain.Review) bool {
	return r.Rating <= negativeMaxStars && r.Sentiment.Overall < 0
}

// Suggestions returns a copy of the fixed suggestion lines for c.
func Suggestions(c domain.Category) []string {
	return append([]string(nil), suggestionTemplates[c]...)
}

// BuildImprovements derives problem areas from negative reviews. Reviews that
// are not negative are ignored. Examples follow the input order, so callers
// pass reviews newest first.
func BuildImprovements(reviews []domain.Review) domain.ImprovementReport {
	rep := domain.ImprovementReport{
		ImprovementAreas:      []domain.ImprovementArea{},
		CommonIssues:          map[domain.Category][]domain.IssueCount{},
		SuggestionsByCategory: map[domain.Category][]string{},
		ReviewExamples:        map[domain.Category][]domain.ReviewExample{},
	}

	negative := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if IsNegative(r) {
			negative = append(negative, r)
		}
	}
	rep.ReviewCount = len(negative)
	if len(negative) == 0 {
		return rep
	}

	counts := make(map[domain.Category]int, len(domain.Categories))
	pools := make(map[domain.Category][]string, len(domain.Categories))
	for _, r := range negative {
		for _, c := range domain.Categories {
			if s := r.Sentiment.Categories.Get(c); s != nil && *s < issueCutoff {
				counts[c]++
				pools[c] = append(pools[c], r.Sentiment.Keywords...)
			}
		}
	}

	for _, c := range domain.Categories {
		if counts[c] == 0 {
			continue
		}
		rep.ImprovementAreas = append(rep.ImprovementAreas, domain.ImprovementArea{
			Category:   c,
			Count:      counts[c],
			Percentage: percent(counts[c], len(negative)),
		})
		if issues := commonIssues(pools[c]); len(issues) > 0 {
			rep.CommonIssues[c] = issues
		}
		rep.SuggestionsByCategory[c] = Suggestions(c)
		if ex := examples(negative, c); len(ex) > 0 {
			rep.ReviewExamples[c] = ex
		}
	}
	sort.SliceStable(rep.ImprovementAreas, func(i, j int) bool {
		return rep.ImprovementAreas[i].Count > rep.ImprovementAreas[j].Count
	})
	return rep
}

func commonIssues(pool []string) []domain.IssueCount {
	if len(pool) == 0 {
		return nil
	}
	var out []domain.IssueCount
	idx := make(map[string]int)
	for _, kw := range pool {
		if i, ok := idx[kw]; ok {
			out[i].Count++
			continue
		}
		idx[kw] = len(out)
		out = append(out, domain.IssueCount{Issue: kw, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > maxCommonIssues {
		out = out[:maxCommonIssues]
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Count, len(pool))
	}
	return out
}

func examples(negative []domain.Review, c domain.Category) []domain.ReviewExample {
	var out []domain.ReviewExample
	for _, r := range negative {
		s := r.Sentiment.Categories.Get(c)
		if s == nil || *s >= exampleCutoff {
			continue
		}
		out = append(out, domain.ReviewExample{
			ID:        r.ID,
			Text:      r.Text,
			Rating:    r.Rating,
			Date:      r.ReviewDate,
			Sentiment: *s,
		})
		if len(out) == maxExamplesPerCat {
			break
		}
	}
	return out
}
