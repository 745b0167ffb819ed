package sentiment

import "math"

// Score sums the lexicon weights of tokens, divides by the token count and
// clamps the result to [-1, 1]. Unknown tokens weigh 0; an empty sequence
// scores 0. The result is not rounded.
func (t *Tables) Score(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	var sum float64
	for _, tok := range tokens {
		sum += t.lexicon[tok]
	}
	return clamp(sum / float64(len(tokens)))
}

// ScoreText is Score over Tokenize(text).
func (t *Tables) ScoreText(text string) float64 { return t.Score(Tokenize(text)) }

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
