package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultAnalyzerTimeout = 3 * time.Second

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	JWTSecret   string

	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIModel     string
	AnalyzerTimeout time.Duration
	AnalyzerRPS     int

	LexiconFile   string
	CategoryMatch string

	ReanalyzeWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		JWTSecret:   env("JWT_SECRET", ""),

		OpenAIKey:       env("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   env("OPENAI_BASE_URL", ""),
		OpenAIModel:     env("OPENAI_MODEL", ""),
		AnalyzerTimeout: time.Duration(atoi("ANALYZER_TIMEOUT_MS", int(defaultAnalyzerTimeout/time.Millisecond))) * time.Millisecond,
		AnalyzerRPS:     atoi("ANALYZER_RPS", 5),

		LexiconFile:   env("LEXICON_FILE", ""),
		CategoryMatch: env("CATEGORY_MATCH", ""),

		ReanalyzeWorkers: atoi("REANALYZE_WORKERS", 4),
	}
	if c.AnalyzerTimeout <= 0 {
		log.Warn().Dur("timeout", c.AnalyzerTimeout).Msg("ANALYZER_TIMEOUT_MS must be positive, using default")
		c.AnalyzerTimeout = defaultAnalyzerTimeout
	}
	if c.ReanalyzeWorkers < 1 {
		c.ReanalyzeWorkers = 1
	}
	if c.OpenAIKey == "" {
		log.Info().Msg("OPENAI_API_KEY is empty; using the local analyzer only")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
