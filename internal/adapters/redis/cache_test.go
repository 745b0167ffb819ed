package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "review_insights/internal/adapters/redis"
	"review_insights/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	food := 0.42
	in := domain.SentimentSnapshot{
		Total:              3,
		PeriodLabel:        "Last 30 days",
		Categories:         domain.CategoryScores{Food: &food},
		RatingDistribution: domain.RatingDistribution{1: 0, 2: 0, 3: 1, 4: 0, 5: 2},
	}
	if err := c.Set(ctx, "sentiment:r1:30days", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("ri:sentiment:r1:30days") {
		t.Fatalf("key not stored under prefix; keys=%v", mr.Keys())
	}
	if ttl := mr.TTL("ri:sentiment:r1:30days"); ttl != 60*time.Second {
		t.Fatalf("ttl: %v", ttl)
	}

	var out domain.SentimentSnapshot
	ok, err := c.Get(ctx, "sentiment:r1:30days", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Total != 3 || out.Categories.Food == nil || *out.Categories.Food != 0.42 || out.RatingDistribution[5] != 2 {
		t.Fatalf("round trip: %+v", out)
	}

	if err := c.Del(ctx, "sentiment:r1:30days"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "sentiment:r1:30days", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_Expiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"a": 1}, 5); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(6 * time.Second)
	var out map[string]int
	if ok, err := c.Get(ctx, "k", &out); ok || err != nil {
		t.Fatalf("expected expired miss, ok=%v err=%v", ok, err)
	}
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newCache(t)
	if err := mr.Set("ri:bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	var out domain.SentimentSnapshot
	ok, err := c.Get(context.Background(), "bad", &out)
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if mr.Exists("ri:bad") {
		t.Fatalf("corrupt entry should be dropped")
	}
}

func TestCache_Ping(t *testing.T) {
	c, mr := newCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error after server close")
	}
}
