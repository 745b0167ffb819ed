package analytics

import (
	"sort"
	"strings"

	"review_insights/internal/domain"
)

const (
	MinCompare = 2
	MaxCompare = 5

	// CompareOverall ranks by the overall star rating.
	CompareOverall = "overall"
)

// ParseCompareIDs splits a comma separated id list, dropping blanks and
// duplicates, and enforces the 2..5 bound.
func ParseCompareIDs(raw string) ([]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < MinCompare || len(ids) > MaxCompare {
		return nil, domain.Invalid("ids", "provide between 2 and 5 restaurant ids")
	}
	return ids, nil
}

// ParseCompareCategory accepts "overall" (the default) or a category name.
func ParseCompareCategory(s string) (string, error) {
	if s == "" || s == CompareOverall {
		return CompareOverall, nil
	}
	if _, ok := domain.ParseCategory(s); !ok {
		return "", domain.Invalid("category", "must be overall, food, service, ambiance or value")
	}
	return s, nil
}

// RankComparison scores restaurants on their stored aggregate for by and sorts
// them descending; equal scores keep input order.
func RankComparison(restaurants []domain.Restaurant, by string) []domain.ComparisonEntry {
	out := make([]domain.ComparisonEntry, 0, len(restaurants))
	for _, r := range restaurants {
		score := r.Rating.Overall
		if c, ok := domain.ParseCategory(by); ok {
			score = r.Rating.Categories.Get(c)
		}
		cuisine := r.Cuisine
		if cuisine == nil {
			cuisine = []string{}
		}
		out = append(out, domain.ComparisonEntry{
			ID:          r.ID,
			Name:        r.Name,
			Cuisine:     cuisine,
			PriceRange:  r.PriceRange,
			Location:    r.City,
			Score:       round1(score),
			ReviewCount: r.Rating.ReviewCount,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
