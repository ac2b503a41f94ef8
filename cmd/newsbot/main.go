package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/deusflow/newsbot/internal/bot"
	"github.com/deusflow/newsbot/internal/cache"
	"github.com/deusflow/newsbot/internal/classify"
	"github.com/deusflow/newsbot/internal/config"
	"github.com/deusflow/newsbot/internal/digest"
	"github.com/deusflow/newsbot/internal/gemini"
	"github.com/deusflow/newsbot/internal/logger"
	"github.com/deusflow/newsbot/internal/metrics"
	"github.com/deusflow/newsbot/internal/ratelimit"
	"github.com/deusflow/newsbot/internal/relevance"
	"github.com/deusflow/newsbot/internal/retry"
	"github.com/deusflow/newsbot/internal/rss"
	"github.com/deusflow/newsbot/internal/scraper"
	"github.com/deusflow/newsbot/internal/storage"
	"github.com/deusflow/newsbot/internal/summary"
	"github.com/deusflow/newsbot/internal/trust"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.Debug)

	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("newsbot: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return err
	}

	store, err := storage.NewSubscriptionStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter := ratelimit.New(cfg.MaxClassifyCalls, cfg.MaxGenerateCalls)
	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	classifier := classify.NewClient(cfg.HFAPIKey,
		classify.WithModel(cfg.HFModel),
		classify.WithBaseURL(cfg.HFBaseURL),
		classify.WithTimeout(cfg.RequestTimeout),
		classify.WithRetry(retryCfg),
		classify.WithLimiter(limiter),
	)

	generator, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, limiter)
	if err != nil {
		return err
	}
	defer generator.Close()

	matcher := relevance.New(classifier, cfg.RelevanceThreshold, cache.New(), cfg.ClassifyCacheTTL)
	scorer := trust.New(classifier, cfg.TrustLowConfidence, cfg.TrustHighConfidence)
	summarizer := summary.New(generator, scraper.New(cfg.RequestTimeout), retryCfg)

	builder := digest.NewBuilder(
		store,
		rss.NewClient(cfg.RequestTimeout),
		feeds,
		matcher,
		scorer,
		summarizer,
		cfg.MaxChecked,
	)

	b, err := bot.New(cfg.TelegramToken, func(sender bot.Sender) *bot.Handler {
		return bot.NewHandler(sender, store, builder, cfg.DigestTimeout)
	})
	if err != nil {
		return err
	}

	b.Run(ctx)
	return nil
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
