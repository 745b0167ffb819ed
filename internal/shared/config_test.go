package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "CACHE_TTL_SECONDS", "ANALYZER_TIMEOUT_MS",
		"OPENAI_API_KEY", "REANALYZE_WORKERS", "CATEGORY_MATCH", "REDIS_DB",
	} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppEnv != "prod" || c.HTTPAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 300*time.Second {
		t.Fatalf("CacheTTL = %v", c.CacheTTL)
	}
	if c.AnalyzerTimeout != 3*time.Second {
		t.Fatalf("AnalyzerTimeout = %v", c.AnalyzerTimeout)
	}
	if c.ReanalyzeWorkers != 4 || c.RedisDB != 0 || c.CategoryMatch != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("ANALYZER_TIMEOUT_MS", "250")
	t.Setenv("ANALYZER_RPS", "2")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("CATEGORY_MATCH", "exact")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REANALYZE_WORKERS", "0")

	c := Load()
	if c.AppEnv != "dev" || c.OpenAIKey != "sk-test" || c.OpenAIModel != "gpt-4o" {
		t.Fatalf("string overrides not applied: %+v", c)
	}
	if c.CacheTTL != time.Minute || c.AnalyzerTimeout != 250*time.Millisecond || c.AnalyzerRPS != 2 {
		t.Fatalf("numeric overrides not applied: %+v", c)
	}
	if c.CategoryMatch != "exact" || c.RedisDB != 3 {
		t.Fatalf("unexpected: %+v", c)
	}
	if c.ReanalyzeWorkers != 1 {
		t.Fatalf("workers should be clamped to 1, got %d", c.ReanalyzeWorkers)
	}
}

func TestLoad_BadIntegerFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "soon")
	if c := Load(); c.CacheTTL != 300*time.Second {
		t.Fatalf("CacheTTL = %v", c.CacheTTL)
	}
}

func TestLoad_NonPositiveAnalyzerTimeoutFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-50"} {
		t.Setenv("ANALYZER_TIMEOUT_MS", v)
		if c := Load(); c.AnalyzerTimeout != 3*time.Second {
			t.Fatalf("ANALYZER_TIMEOUT_MS=%s: got %v", v, c.AnalyzerTimeout)
		}
	}
}
