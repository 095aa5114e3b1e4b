// cmd/worker-manager/serve.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/repository"
	"matching-workers/pkg/registry"

	ccs "matching-workers/internal/workers/matching/calculate-compatibility-score"
	ra "matching-workers/internal/workers/matching/rank-applicants"
	roc "matching-workers/internal/workers/matching/resolve-offer-category"
)

var connectRetry = &camunda.RetryConfig{
	MaxRetries: 15,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// runServe connects every collaborator, starts the enabled workers and blocks
// until SIGINT or SIGTERM.
func runServe(cfg *config.Config) error {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.Observability)
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}

	scorer, err := buildScorer(cfg)
	if err != nil {
		zapLog.Error("scoring configuration rejected", zap.Error(err))
		return err
	}
	zapLog.Info("compatibility scorer ready", zap.Int("categories", len(scorer.Categories())))

	ctx := context.Background()

	// --- Zeebe ---
	zeebe, err := camunda.NewClient(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres setup failed", zap.Error(err))
	}
	if err := camunda.Retry(ctx, connectRetry, log, "PostgreSQL connection", pg.Ping); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Elasticsearch ---
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		zapLog.Fatal("elasticsearch setup failed", zap.Error(err))
	}
	if err := camunda.Retry(ctx, connectRetry, log, "Elasticsearch connection", es.Ping); err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Redis (optional: workers run uncached when it is down) ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		zapLog.Warn("redis unavailable, caches will miss", zap.Error(err))
	} else {
		zapLog.Info("Redis connected successfully")
	}

	profiles := repository.NewProfileRepository(pg.DB, rdb.Client,
		time.Duration(cfg.Scoring.ProfileCacheTTL)*time.Second, log)
	offers := repository.NewOfferRepository(es.Client, es.OffersIndex, log)
	reports := repository.NewReportCache(rdb.Client,
		time.Duration(cfg.Scoring.CacheTTL)*time.Second, log)

	// --- Workers ---
	pool := camunda.NewWorkerPool(zeebe.GetClient(), log)

	{
		wcfg := config.GetWorkerConfig(cfg, ccs.TaskType)
		handler := ccs.NewHandler(ccs.NewConfig(wcfg), scorer, profiles, offers, reports, obs, log)
		pool.Start(ccs.TaskType, wcfg, handler.Handle)
	}
	{
		wcfg := config.GetWorkerConfig(cfg, ra.TaskType)
		handler := ra.NewHandler(ra.NewConfig(wcfg), scorer, profiles, offers, obs, log)
		pool.Start(ra.TaskType, wcfg, handler.Handle)
	}
	{
		wcfg := config.GetWorkerConfig(cfg, roc.TaskType)
		handler := roc.NewHandler(roc.NewConfig(wcfg), scorer, obs, log)
		pool.Start(roc.TaskType, wcfg, handler.Handle)
	}
	zapLog.Info("workers registered", zap.Strings("taskTypes", pool.TaskTypes()))
	checkRegistry(cfg.App.RegistryPath, pool.TaskTypes(), zapLog)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		status := http.StatusOK
		for name, ping := range map[string]func(context.Context) error{
			"zeebe":         zeebe.HealthCheck,
			"postgres":      pg.Ping,
			"elasticsearch": es.Ping,
		} {
			if err := ping(checkCtx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		if err := rdb.Ping(checkCtx); err != nil {
			checks["redis"] = "degraded: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error flushing telemetry", zap.Error(err))
	}
	zapLog.Info("worker manager stopped")
	return nil
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// checkRegistry warns about started workers the activity registry does not
// document. A missing or invalid registry is not fatal.
func checkRegistry(path string, taskTypes []string, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err == nil {
		err = reg.Validate()
	}
	if err != nil {
		log.Warn("activity registry unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	for _, taskType := range taskTypes {
		if _, ok := reg.Find(taskType); !ok {
			log.Warn("worker missing from activity registry", zap.String("taskType", taskType))
		}
	}
}
