package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "review_insights/internal/adapters/http_server"
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
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; analytics will be computed uncached")
	}

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

	analysis := app.NewAnalysisService(sentiment.NewAnalyzer(tables), external, cfg.AnalyzerTimeout)
	ratings := app.NewRatingService(repo, repo)
	analyticsSvc := app.NewAnalyticsService(repo, repo, cache, cfg.CacheTTL)
	reviews := app.NewReviewService(repo, repo, analysis, ratings, analyticsSvc)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Analysis:  analysis,
		Analytics: analyticsSvc,
		Reviews:   reviews,
		Auth:      server.NewAuthenticator(cfg.JWTSecret),
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Bool("external_analyzer", external != nil).
		Str("category_match", string(tables.Match())).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	_ = cache.Close()
	_ = db.Close()
	log.Info().Msg("API stopped")
}
