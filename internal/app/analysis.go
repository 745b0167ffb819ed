package app

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"review_insights/internal/adapters/observability"
	"review_insights/internal/domain"
	"review_insights/internal/sentiment"
)

const minReviewTextLen = 10

type Source string

const (
	SourceExternal Source = "external"
	SourceLocal    Source = "local"
)

// FallbackReason says why the local analyzer produced a profile.
type FallbackReason string

const (
	ReasonNone          FallbackReason = ""
	ReasonNotConfigured FallbackReason = "not_configured"
	ReasonTimeout       FallbackReason = "timeout"
	ReasonError         FallbackReason = "error"
	ReasonMalformed     FallbackReason = "malformed"
)

// Outcome is the tagged result of one analysis: an accepted external profile,
// or a local profile plus the reason the external one was not used.
type Outcome struct {
	Profile domain.SentimentProfile `json:"sentiment"`
	Source  Source                  `json:"source"`
	Reason  FallbackReason          `json:"reason,omitempty"`
}

func (o Outcome) Fallback() bool { return o.Source == SourceLocal }

type AnalysisService struct {
	local    *sentiment.Analyzer
	external domain.ExternalAnalyzer
	timeout  time.Duration
}

// NewAnalysisService wires the local analyzer with an optional external one.
// ext may be nil. timeout bounds each external call; <= 0 means only the
// caller's context bounds it.
func NewAnalysisService(local *sentiment.Analyzer, ext domain.ExternalAnalyzer, timeout time.Duration) *AnalysisService {
	if local == nil {
		local = sentiment.NewAnalyzer(nil)
	}
	return &AnalysisService{local: local, external: ext, timeout: timeout}
}

// Analyze always returns a profile. External failures of any kind fall back to
// the local pipeline; there are no retries within one call.
func (s *AnalysisService) Analyze(ctx context.Context, text string) Outcome {
	start := time.Now()
	out := s.analyze(ctx, text)
	observability.ObserveAnalyzer(string(out.Source), string(out.Reason), time.Since(start))

	switch {
	case out.Source == SourceExternal:
		log.Debug().Float64("overall", out.Profile.Overall).Msg("external analysis accepted")
	case out.Reason != ReasonNotConfigured:
		log.Warn().Str("reason", string(out.Reason)).Str("source", string(out.Source)).
			Msg("external analysis unavailable, using local analyzer")
	}
	return out
}

// Preview validates text like a review submission and analyzes it without
// persisting anything.
func (s *AnalysisService) Preview(ctx context.Context, text string) (Outcome, error) {
	text, err := ValidateReviewText(text)
	if err != nil {
		return Outcome{}, err
	}
	return s.Analyze(ctx, text), nil
}

func (s *AnalysisService) analyze(ctx context.Context, text string) Outcome {
	if s.external == nil {
		return s.fallback(text, ReasonNotConfigured)
	}

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if s.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type result struct {
		payload map[string]any
		err     error
	}
	// buffered so a late answer never blocks the goroutine after we gave up
	ch := make(chan result, 1)
	go func() {
		p, err := s.external.AnalyzeReview(callCtx, text)
		ch <- result{payload: p, err: err}
	}()

	select {
	case <-callCtx.Done():
		return s.fallback(text, reasonFor(callCtx.Err()))
	case res := <-ch:
		if res.err != nil {
			return s.fallback(text, reasonFor(res.err))
		}
		p, ok := sentiment.Coerce(res.payload)
		if !ok {
			return s.fallback(text, ReasonMalformed)
		}
		return Outcome{Profile: p, Source: SourceExternal}
	}
}

func (s *AnalysisService) fallback(text string, why FallbackReason) Outcome {
	return Outcome{Profile: s.local.Analyze(text), Source: SourceLocal, Reason: why}
}

func reasonFor(err error) FallbackReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonError
}

// ValidateReviewText trims text and enforces the minimum review length.
func ValidateReviewText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.Invalid("text", "review text is required")
	}
	if utf8.RuneCountInString(text) < minReviewTextLen {
		return "", domain.Invalid("text", "review must be at least 10 characters")
	}
	return text, nil
}
