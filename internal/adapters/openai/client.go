// internal/adapters/openai/client.go
package openaiad

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"review_insights/internal/adapters/observability"
)

const systemPrompt = `You are a sentiment analysis expert for restaurant reviews.
Analyze the review and answer with JSON only, using exactly this structure:
{
  "version": "1",
  "overall": number from -1 (very negative) to 1 (very positive),
  "intensity": "neutral" | "mild" | "moderate" | "strong",
  "categories": {"food": number|null, "service": number|null, "ambiance": number|null, "value": number|null},
  "keywords": [string, at most 10],
  "sentimentPhrases": [{"text": string, "sentiment": "positive"|"negative", "score": number}]
}
Categories: food is quality, taste and menu; service is staff speed, attentiveness and
professionalism; ambiance is atmosphere, decor, noise and cleanliness; value is price
against quality and portion size. Use null for a category the review does not address.`

const maxAttempts = 3

var (
	ErrNoJSON    = errors.New("openai: response contains no JSON object")
	ErrNoChoices = errors.New("openai: empty response")
)

// Client asks an OpenAI-compatible chat endpoint for a review analysis and
// returns the decoded JSON object untouched.
type Client struct {
	api   *openai.Client
	model string
	rl    *rate.Limiter
}

// New returns nil, nil when key is empty: the external analyzer is optional.
func New(key, baseURL, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, nil
	}
	if rps <= 0 {
		rps = 5
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) AnalyzeReview(ctx context.Context, text string) (map[string]any, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	content, err := c.complete(ctx, text)
	if err != nil {
		return nil, err
	}
	return extractObject(content)
}

// complete retries 429 and transient 5xx answers with backoff while ctx allows.
func (c *Client) complete(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Analyze this restaurant review: %q", text)},
		},
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		start := time.Now()
		resp, err := c.api.CreateChatCompletion(ctx, req)
		status := statusOf(err)
		observability.ObserveExternal("openai", "chat_completions", status, time.Since(start))
		if err == nil {
			if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
				return "", ErrNoChoices
			}
			return resp.Choices[0].Message.Content, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = fmt.Errorf("openai chat completion: %w", err)
		if !retryable(status) {
			return "", lastErr
		}
		if i < maxAttempts-1 && !sleepCtx(ctx, backoff(i)) {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// extractObject decodes the outermost {...} in content; models sometimes wrap
// JSON in prose or code fences.
func extractObject(content string) (map[string]any, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("openai: decode analysis: %w", err)
	}
	return out, nil
}

// statusOf returns the HTTP status behind err, 200 for nil and 0 when unknown.
func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func retryable(status int) bool {
	switch status {
	case 0, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
