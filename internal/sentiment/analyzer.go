package sentiment

import "review_insights/internal/domain"

// Analyzer runs the local lexicon pipeline.
type Analyzer struct {
	tables *Tables
}

// NewAnalyzer returns an Analyzer over t, or over DefaultTables when t is nil.
func NewAnalyzer(t *Tables) *Analyzer {
	if t == nil {
		t = DefaultTables()
	}
	return &Analyzer{tables: t}
}

func (a *Analyzer) Tables() *Tables { return a.tables }

// Analyze builds a complete profile for text. Empty or signal-free text yields
// a neutral zero profile, never an error.
func (a *Analyzer) Analyze(text string) domain.SentimentProfile {
	t := a.tables
	tokens := Tokenize(text)
	sentences := SplitSentences(text)

	overall := t.Score(tokens)
	keywords := t.Keywords(tokens)
	if keywords == nil {
		keywords = []string{}
	}
	phrases := t.Phrases(sentences)
	if phrases == nil {
		phrases = []domain.SentimentPhrase{}
	}

	return domain.SentimentProfile{
		Overall:          round2(overall),
		Intensity:        t.Intensity(overall, text),
		Categories:       t.Categories(sentences),
		Keywords:         keywords,
		SentimentPhrases: phrases,
	}
}
