package sentiment

import (
	"strings"

	"review_insights/internal/domain"
)

// Categories averages sentence scores per category. A sentence counts for
// every category whose keyword set it matches, so one sentence may feed
// several categories. Categories without a matching sentence stay nil, which
// is distinct from a matched average of exactly 0.
func (t *Tables) Categories(sentences []string) domain.CategoryScores {
	var (
		sums   = make(map[domain.Category]float64, len(domain.Categories))
		counts = make(map[domain.Category]int, len(domain.Categories))
	)
	for _, sentence := range sentences {
		tokens := Tokenize(sentence)
		score := t.Score(tokens)
		for _, c := range domain.Categories {
			if t.mentions(c, tokens) {
				sums[c] += score
				counts[c]++
			}
		}
	}

	var out domain.CategoryScores
	for _, c := range domain.Categories {
		if counts[c] == 0 {
			continue
		}
		v := round2(clamp(sums[c] / float64(counts[c])))
		out.Set(c, &v)
	}
	return out
}

func (t *Tables) mentions(c domain.Category, tokens []string) bool {
	for _, kw := range t.categories[c] {
		for _, tok := range tokens {
			if t.keywordMatch(tok, kw) {
				return true
			}
		}
	}
	return false
}

func (t *Tables) keywordMatch(token, keyword string) bool {
	if t.match == MatchExact {
		return token == keyword
	}
	return strings.Contains(token, keyword) || strings.Contains(keyword, token)
}
