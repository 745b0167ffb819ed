package sentiment

import (
	"encoding/json"
	"math"
	"strings"

	"review_insights/internal/domain"
)

const maxExternalKeywords = 10

/********** alias registry for external payloads **********/

var payloadAliases = map[string][]string{
	"overall":    {"overall", "overall_sentiment", "overallSentiment", "score"},
	"intensity":  {"intensity", "sentiment_intensity"},
	"categories": {"categories", "category_sentiment", "categorySentiment"},
	"keywords":   {"keywords", "key_words", "topics"},
	"phrases":    {"sentimentPhrases", "sentiment_phrases", "phrases"},
}

// Coerce validates an external analyzer payload and normalizes it into a
// profile. It reports false when the payload is unusable: nil, an unknown
// "version", or a missing or non-numeric overall score. Everything else is
// repaired: scores are clamped and rounded, unknown intensities become
// neutral, and lists are filtered and capped like local output.
func Coerce(payload map[string]any) (domain.SentimentProfile, bool) {
	if payload == nil || !versionOK(payload["version"]) {
		return domain.SentimentProfile{}, false
	}
	overall, ok := firstNumber(payload, payloadAliases["overall"]...)
	if !ok {
		return domain.SentimentProfile{}, false
	}
	overall = round2(clamp(overall))

	p := domain.SentimentProfile{
		Overall:          overall,
		Keywords:         coerceKeywords(firstPresent(payload, payloadAliases["keywords"]...)),
		SentimentPhrases: coercePhrases(firstPresent(payload, payloadAliases["phrases"]...)),
	}

	intensity := domain.Intensity(strings.ToLower(firstString(payload, payloadAliases["intensity"]...)))
	if !intensity.Valid() {
		intensity = domain.IntensityNeutral
	}
	p.Intensity = intensity

	if cats, ok := firstPresent(payload, payloadAliases["categories"]...).(map[string]any); ok {
		for _, c := range domain.Categories {
			if f, ok := number(cats[string(c)]); ok {
				v := round2(clamp(f))
				p.Categories.Set(c, &v)
			}
		}
	}
	return p, true
}

func versionOK(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == "1"
	}
	f, ok := number(v)
	return ok && f == 1
}

// number accepts Go and JSON numeric types only; numeric strings are rejected.
func number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		var err error
		if f, err = x.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := number(m[k]); ok {
			return f, true
		}
	}
	return 0, false
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func coerceKeywords(v any) []string {
	out := []string{}
	items, _ := v.([]any)
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		if s = strings.ToLower(strings.TrimSpace(s)); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxExternalKeywords {
			break
		}
	}
	return out
}

func coercePhrases(v any) []domain.SentimentPhrase {
	var pos, neg []domain.SentimentPhrase
	items, _ := v.([]any)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		text := firstString(m, "text", "phrase")
		score, ok := number(m["score"])
		if text == "" || !ok {
			continue
		}
		ph := domain.SentimentPhrase{Text: text, Score: round2(clamp(score))}
		switch strings.ToLower(firstString(m, "sentiment", "polarity")) {
		case string(domain.PolarityPositive):
			ph.Sentiment = domain.PolarityPositive
		case string(domain.PolarityNegative):
			ph.Sentiment = domain.PolarityNegative
		default:
			if ph.Score == 0 {
				continue
			}
			ph.Sentiment = domain.PolarityPositive
			if ph.Score < 0 {
				ph.Sentiment = domain.PolarityNegative
			}
		}
		if ph.Sentiment == domain.PolarityPositive && len(pos) < maxPhrasesPerSide {
			pos = append(pos, ph)
		} else if ph.Sentiment == domain.PolarityNegative && len(neg) < maxPhrasesPerSide {
			neg = append(neg, ph)
		}
	}
	return append(append([]domain.SentimentPhrase{}, pos...), neg...)
}
