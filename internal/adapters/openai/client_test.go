package openaiad_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	openaiad "review_insights/internal/adapters/openai"
)

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func newServer(t *testing.T, h http.HandlerFunc) *openaiad.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := openaiad.New("test-key", srv.URL+"/v1", "", 100)
	if err != nil || c == nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_NoKeyMeansDisabled(t *testing.T) {
	c, err := openaiad.New("", "", "", 0)
	if err != nil || c != nil {
		t.Fatalf("expected nil client, got %v %v", c, err)
	}
}

func TestAnalyzeReview_ExtractsJSON(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header: %q", got)
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Messages) != 2 || !strings.Contains(body.Messages[1].Content, "cold soup") {
			t.Errorf("messages: %+v", body.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("Here you go:\n```json\n{\"version\":\"1\",\"overall\":-0.6,\"categories\":{\"food\":-0.7}}\n```"))
	})

	out, err := c.AnalyzeReview(context.Background(), "cold soup again")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out["overall"].(float64) != -0.6 || out["version"] != "1" {
		t.Fatalf("payload: %v", out)
	}
}

func TestAnalyzeReview_RetriesTransientErrors(t *testing.T) {
	var calls int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(chatResponse(`{"overall":0.4}`))
	})

	out, err := c.AnalyzeReview(context.Background(), "fine food")
	if err != nil || out["overall"].(float64) != 0.4 {
		t.Fatalf("out=%v err=%v", out, err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected one retry, got %d calls", calls)
	}
}

func TestAnalyzeReview_Failures(t *testing.T) {
	t.Run("client error is not retried", func(t *testing.T) {
		var calls int32
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
		})
		if _, err := c.AnalyzeReview(context.Background(), "x"); err == nil {
			t.Fatalf("expected error")
		}
		if atomic.LoadInt32(&calls) != 1 {
			t.Fatalf("calls: %d", calls)
		}
	})

	t.Run("no json in content", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(chatResponse("I cannot help with that."))
		})
		if _, err := c.AnalyzeReview(context.Background(), "x"); !errors.Is(err, openaiad.ErrNoJSON) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("context deadline", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		if _, err := c.AnalyzeReview(ctx, "x"); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("got %v", err)
		}
	})
}
