package sentiment

import (
	"math"
	"sort"
	"unicode/utf8"

	"review_insights/internal/domain"
)

const (
	maxKeywords       = 10
	minKeywordRunes   = 3
	phraseThreshold   = 0.3
	maxPhrasesPerSide = 3
)

// Keywords returns up to 10 content words ranked by frequency. Stop-words and
// tokens shorter than 3 runes are skipped; ties keep first-seen order.
func (t *Tables) Keywords(tokens []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordRunes || t.isStopword(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// Phrases scores each sentence on its own and keeps those with |score| > 0.3:
// the 3 most positive (descending) followed by the 3 most negative (ascending).
func (t *Tables) Phrases(sentences []string) []domain.SentimentPhrase {
	var pos, neg []domain.SentimentPhrase
	for _, s := range sentences {
		score := t.ScoreText(s)
		if math.Abs(score) <= phraseThreshold {
			continue
		}
		p := domain.SentimentPhrase{Text: s, Score: round2(score)}
		if score > 0 {
			p.Sentiment = domain.PolarityPositive
			pos = append(pos, p)
		} else {
			p.Sentiment = domain.PolarityNegative
			neg = append(neg, p)
		}
	}
	sort.SliceStable(pos, func(i, j int) bool { return pos[i].Score > pos[j].Score })
	sort.SliceStable(neg, func(i, j int) bool { return neg[i].Score < neg[j].Score })
	if len(pos) > maxPhrasesPerSide {
		pos = pos[:maxPhrasesPerSide]
	}
	if len(neg) > maxPhrasesPerSide {
		neg = neg[:maxPhrasesPerSide]
	}
	return append(pos, neg...)
}
