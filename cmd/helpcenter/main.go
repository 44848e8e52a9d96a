// Command helpcenter runs the help-center documentation search service.
//
// It serves the /api/v1 surface over HTTP, exposes Prometheus metrics on a
// dedicated port, and optionally wires a Redis search cache, a Kafka
// analytics publisher, and a Postgres snapshot store. Missing external
// dependencies degrade the service instead of preventing startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics/sink"
	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter"
	"github.com/Damatnic/astral-turf-helpcenter/internal/helpcenter/handler"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search/cache"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/config"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/health"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/kafka"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/metrics"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/postgres"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("main")
	log.Info("starting help-center service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(cfg.Docs.SeedFile)
	if err != nil {
		log.Error("failed to load seed corpus", "file", cfg.Docs.SeedFile, "error", err)
		os.Exit(1)
	}
	log.Info("seed corpus loaded", "documents", len(seed))

	checker := health.NewChecker()
	checker.Register("docstore", func(ctx context.Context) health.ComponentHealth {
		return health.ComponentHealth{Status: health.StatusUp}
	})

	var m *metrics.Metrics
	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		m = metrics.New()
		metricsSrv = metrics.NewServer(cfg.Metrics.Port)
		metricsSrv.Start()
	}

	// Optional sinks. Each one degrades to a warning when its backing
	// service is unreachable.
	var publisher *sink.KafkaPublisher
	if cfg.Analytics.PublishEnabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.AnalyticsTopic)
		defer producer.Close()
		publisher = sink.NewKafkaPublisher(producer, cfg.Analytics.PublishBuffer, cfg.Kafka.PublishAttempts)
		publisher.Start(ctx)
		log.Info("analytics kafka publisher enabled", "topic", cfg.Kafka.AnalyticsTopic)
	}

	var recorder *analytics.Recorder
	if publisher != nil {
		recorder = analytics.NewRecorder(publisher)
	} else {
		recorder = analytics.NewRecorder(nil)
	}

	var searchCache helpcenter.SearchCache
	if cfg.Search.CacheEnabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, search cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer redisClient.Close()
			searchCache = cache.New(redisClient, cfg.Search.CacheTTL)
			checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
				if err := redisClient.Ping(ctx); err != nil {
					return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
				}
				return health.ComponentHealth{Status: health.StatusUp}
			})
			log.Info("search cache enabled", "ttl", cfg.Search.CacheTTL)
		}
	}

	svc := helpcenter.New(seed, recorder, searchCache, m)
	defer svc.Close()

	if cfg.Analytics.SnapshotEnabled {
		pgClient, err := postgres.New(cfg.Postgres)
		if err != nil {
			log.Warn("postgres unavailable, analytics snapshots disabled", "error", err)
		} else {
			defer pgClient.Close()
			snapshots := sink.NewSnapshotStore(pgClient)
			snapshots.StartPeriodicSave(ctx, recorder, cfg.Analytics.SnapshotInterval)
			checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
				if err := pgClient.Ping(ctx); err != nil {
					return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
				}
				return health.ComponentHealth{Status: health.StatusUp}
			})
			log.Info("analytics snapshots enabled", "interval", cfg.Analytics.SnapshotInterval)
		}
	}

	h := handler.New(svc, handler.Config{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxResults:   cfg.Search.MaxResults,
	})
	router := handler.NewRouter(h, checker, m, cfg.Server.RequestTimeout)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", "error", err)
		}
	}
	if publisher != nil {
		publisher.Close()
	}
	log.Info("shutdown complete")
}

func loadSeed(path string) ([]docstore.Document, error) {
	if path == "" {
		return docstore.SampleCorpus(), nil
	}
	return docstore.LoadSeedFile(path)
}
