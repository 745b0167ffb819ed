package sentiment

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"review_insights/internal/domain"
)

// MatchMode controls how a sentence token is tested against category keywords.
type MatchMode string

const (
	// MatchSubstring accepts a token that contains a keyword or is contained
	// in one. Short tokens therefore match broadly.
	MatchSubstring MatchMode = "substring"
	// MatchExact requires token == keyword.
	MatchExact MatchMode = "exact"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("sentiment: unknown category match mode %q", s)
}

// TableSource is the editable, file-friendly form of Tables.
type TableSource struct {
	Lexicon      map[string]float64  `yaml:"lexicon"`
	Categories   map[string][]string `yaml:"categories"`
	Stopwords    []string            `yaml:"stopwords"`
	Intensifiers []string            `yaml:"intensifiers"`
	Match        MatchMode           `yaml:"match"`
}

// Tables holds the lexicon and keyword sets used by every stage. Build it once
// with NewTables and share it; it is never mutated afterwards.
type Tables struct {
	lexicon     map[string]float64
	categories  map[domain.Category][]string
	stopwords   map[string]struct{}
	intensifier *regexp.Regexp
	match       MatchMode
}

// NewTables copies src into an immutable Tables.
func NewTables(src TableSource) *Tables {
	t := &Tables{
		lexicon:    make(map[string]float64, len(src.Lexicon)),
		categories: make(map[domain.Category][]string, len(domain.Categories)),
		stopwords:  make(map[string]struct{}, len(src.Stopwords)),
		match:      src.Match,
	}
	if t.match == "" {
		t.match = MatchSubstring
	}
	for w, s := range src.Lexicon {
		t.lexicon[strings.ToLower(w)] = s
	}
	for _, c := range domain.Categories {
		kws := make([]string, 0, len(src.Categories[string(c)]))
		for _, k := range src.Categories[string(c)] {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		t.categories[c] = kws
	}
	for _, w := range src.Stopwords {
		t.stopwords[strings.ToLower(w)] = struct{}{}
	}
	t.intensifier = intensifierPattern(src.Intensifiers)
	return t
}

// DefaultTables returns Tables built from the built-in lexicon and keyword sets.
func DefaultTables() *Tables { return NewTables(DefaultSource()) }

// DefaultSource returns a fresh copy of the built-in tables.
func DefaultSource() TableSource {
	src := TableSource{
		Lexicon:      make(map[string]float64, len(defaultLexicon)),
		Categories:   make(map[string][]string, len(defaultCategoryKeywords)),
		Stopwords:    append([]string(nil), defaultStopwords...),
		Intensifiers: append([]string(nil), defaultIntensifiers...),
		Match:        MatchSubstring,
	}
	for w, s := range defaultLexicon {
		src.Lexicon[w] = s
	}
	for c, kws := range defaultCategoryKeywords {
		src.Categories[string(c)] = append([]string(nil), kws...)
	}
	return src
}

// Overlay returns src with the non-empty parts of o applied on top: lexicon
// entries are merged, category and list entries replace the defaults.
func (src TableSource) Overlay(o TableSource) TableSource {
	for w, s := range o.Lexicon {
		src.Lexicon[w] = s
	}
	for c, kws := range o.Categories {
		if _, ok := domain.ParseCategory(c); ok && len(kws) > 0 {
			src.Categories[c] = kws
		}
	}
	if len(o.Stopwords) > 0 {
		src.Stopwords = o.Stopwords
	}
	if len(o.Intensifiers) > 0 {
		src.Intensifiers = o.Intensifiers
	}
	if o.Match != "" {
		src.Match = o.Match
	}
	return src
}

// LoadTables builds Tables from the defaults, overlaid with the YAML file at
// path when path is not empty. match, when set, wins over the file.
func LoadTables(path string, match MatchMode) (*Tables, error) {
	src := DefaultSource()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read lexicon file: %w", err)
		}
		var fileSrc TableSource
		if err := yaml.Unmarshal(raw, &fileSrc); err != nil {
			return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
		}
		src = src.Overlay(fileSrc)
	}
	if match != "" {
		src.Match = match
	}
	if _, err := ParseMatchMode(string(src.Match)); err != nil {
		return nil, err
	}
	return NewTables(src), nil
}

func (t *Tables) Match() MatchMode { return t.match }

// Weight returns the lexicon polarity of a lowercase token, 0 when absent.
func (t *Tables) Weight(token string) float64 { return t.lexicon[token] }

func (t *Tables) isStopword(token string) bool {
	_, ok := t.stopwords[token]
	return ok
}

func intensifierPattern(words []string) *regexp.Regexp {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	// longest first so alternation prefers "really" over a shorter prefix
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}
