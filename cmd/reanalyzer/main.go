// Command reanalyzer re-runs sentiment analysis over every live review of the
// given restaurants (all active ones when no ids are passed) and recomputes
// their aggregate ratings.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_insights/internal/adapters/observability"
	openaiad "review_insights/internal/adapters/openai"
	redisad "review_insights/internal/adapters/redis"
	"review_insights/internal/app"
	"review_insights/internal/domain"
	"review_insights/internal/sentiment"
	"review_insights/internal/shared"
	mysqlrepo "review_insights/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "reanalyzer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	ids := os.Args[1:]
	if len(ids) == 0 {
		if ids, err = repo.ListActiveRestaurantIDs(ctx); err != nil {
			log.Fatal().Err(err).Msg("list restaurants")
		}
	}

	log.Info().
		Int("workers", cfg.ReanalyzeWorkers).
		Int("restaurants", len(ids)).
		Msg("reanalyzer starting")

	match, err := sentiment.ParseMatchMode(cfg.CategoryMatch)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid CATEGORY_MATCH")
	}
	tables, err := sentiment.LoadTables(cfg.LexiconFile, match)
	if err != nil {
		log.Fatal().Err(err).Msg("load lexicon tables")
	}
	var external domain.ExternalAnalyzer
	llm, err := openaiad.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AnalyzerRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("openai client")
	}
	if llm != nil {
		external = llm
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	analysis := app.NewAnalysisService(sentiment.NewAnalyzer(tables), external, cfg.AnalyzerTimeout)
	ratings := app.NewRatingService(repo, repo)
	analyticsSvc := app.NewAnalyticsService(repo, repo, cache, cfg.CacheTTL)
	reviews := app.NewReviewService(repo, repo, analysis, ratings, analyticsSvc)

	sem := semaphore.NewWeighted(int64(cfg.ReanalyzeWorkers))
	var (
		wg       sync.WaitGroup
		total    atomic.Int64
		failures atomic.Int64
	)

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("interrupted, waiting for running jobs")
			break
		}

		wg.Add(1)
		go func(restaurantID string) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := reviews.Reanalyze(ctx, restaurantID)
			if err != nil {
				failures.Add(1)
				log.Warn().Str("restaurant", restaurantID).Err(err).Msg("reanalyze failed")
				return
			}
			total.Add(int64(n))
			log.Info().Str("restaurant", restaurantID).Int("reviews", n).Msg("reanalyze ok")
		}(id)
	}

	wg.Wait()
	log.Info().
		Int64("reviews", total.Load()).
		Int64("failed_restaurants", failures.Load()).
		Msg("reanalysis completed")
	if failures.Load() > 0 {
		os.Exit(1)
	}
}
