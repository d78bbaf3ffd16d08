// Command server runs the foyer API: kiosk registration and check-in,
// watchlist screening, and the admin console endpoints.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foyer/internal/platform/config"
	"foyer/internal/platform/httpserver"
	"foyer/internal/platform/kafka"
	"foyer/internal/platform/logger"
	platformmetrics "foyer/internal/platform/metrics"
	"foyer/internal/platform/middleware"
	platformredis "foyer/internal/platform/redis"
	screeninghandler "foyer/internal/screening/handler"
	screeninglog "foyer/internal/screening/log"
	screeningmetrics "foyer/internal/screening/metrics"
	screeningservice "foyer/internal/screening/service"
	visithandler "foyer/internal/visit/handler"
	visitmetrics "foyer/internal/visit/metrics"
	"foyer/internal/visit/pass"
	visitservice "foyer/internal/visit/service"
	visitstore "foyer/internal/visit/store/visit"
	visitorstore "foyer/internal/visit/store/visitor"
	"foyer/internal/watchlist/engine"
	watchlisthandler "foyer/internal/watchlist/handler"
	watchlistmetrics "foyer/internal/watchlist/metrics"
	watchlistservice "foyer/internal/watchlist/service"
	"foyer/internal/watchlist/store"
	entrystore "foyer/internal/watchlist/store/entry"
	levelstore "foyer/internal/watchlist/store/level"
	rulesstore "foyer/internal/watchlist/store/rules"
	"foyer/migrations"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	stores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	logPipeline, err := buildLogPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer logPipeline.close()

	entryService := watchlistservice.NewEntryService(stores.entries, stores.levels,
		watchlistservice.WithLogger(log),
		watchlistservice.WithMetrics(watchlistmetrics.New()),
	)
	levelService := watchlistservice.NewLevelService(stores.levels, stores.entries,
		watchlistservice.WithLogger(log),
	)
	ruleSetService := watchlistservice.NewRuleSetService(stores.ruleSets,
		watchlistservice.WithLogger(log),
	)

	screener := screeningservice.New(stores.entries, stores.ruleSets, stores.levels,
		logPipeline.publisher,
		screeningservice.NewSlogNotifier(log),
		screeningservice.WithLogger(log),
		screeningservice.WithMetrics(logPipeline.metrics),
		screeningservice.WithEngineOptions(engine.Options{RequireNonEmpty: cfg.MatchRequireNonEmpty}),
	)

	visitSvc := visitservice.New(stores.visitors, stores.visits, screener,
		pass.NewIssuer(cfg.PassSigningKey, cfg.PassTTL),
		visitservice.WithLogger(log),
		visitservice.WithMetrics(visitmetrics.New()),
	)

	router := buildRouter(cfg, log,
		watchlisthandler.New(entryService, levelService, ruleSetService, log),
		screeninghandler.New(screener, logPipeline.recent, log),
		visithandler.New(visitSvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	log.Info("foyer listening", "addr", cfg.Addr, "postgres", cfg.PostgresURL != "", "admin_api", cfg.AdminToken != "")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func buildRouter(cfg config.Config, log *slog.Logger,
	watchlist *watchlisthandler.Handler,
	screening *screeninghandler.Handler,
	visits *visithandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(platformmetrics.New().Instrument)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	visits.Register(r)

	// The admin console: watchlist management, the screening log, and the
	// visit approval queue, all behind the shared token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
		watchlist.Register(r)
		screening.Register(r)
		r.Route("/admin", func(r chi.Router) {
			visits.RegisterAdmin(r)
		})
	})

	return r
}

// stores bundles the persistence layer. Postgres when configured,
// otherwise seeded in-memory stores for development.
type stores struct {
	entries  watchlistservice.EntryStore
	levels   watchlistservice.LevelStore
	ruleSets watchlistservice.RuleSetStore
	visitors visitservice.VisitorStore
	visits   visitservice.VisitStore

	db *sql.DB
}

func (s *stores) close() {
	if s.db != nil {
		s.db.Close()
	}
}

func buildStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	if cfg.PostgresURL == "" {
		levels := levelstore.NewInMemory()
		ruleSets := rulesstore.NewInMemory()
		store.SeedDefaults(levels, ruleSets)
		log.Info("using in-memory stores with seeded defaults")
		return &stores{
			entries:  entrystore.NewInMemory(),
			levels:   levels,
			ruleSets: ruleSets,
			visitors: visitorstore.NewInMemory(),
			visits:   visitstore.NewInMemory(),
		}, nil
	}

	db, err := sql.Open("pgx", cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &stores{
		entries:  entrystore.NewPostgres(db),
		levels:   levelstore.NewPostgres(db),
		ruleSets: rulesstore.NewPostgres(db),
		visitors: visitorstore.NewPostgres(db),
		visits:   visitstore.NewPostgres(db),
		db:       db,
	}, nil
}

// logPipeline is the screening-log path: a queryable recent-events store
// (Redis when configured), an optional Kafka sink feeding the archiver,
// and the async publisher fanning events out to both.
type logPipeline struct {
	publisher *screeninglog.Publisher
	recent    screeninghandler.LogReader
	metrics   *screeningmetrics.Metrics

	kafkaPublisher *kafka.Publisher
	redisClient    *platformredis.Client
}

func (p *logPipeline) close() {
	if p.publisher != nil {
		p.publisher.Close()
	}
	if p.kafkaPublisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.kafkaPublisher.Close(ctx); err != nil {
			slog.Error("kafka producer close failed", "error", err)
		}
	}
	if p.redisClient != nil {
		p.redisClient.Close()
	}
}

func buildLogPipeline(ctx context.Context, cfg config.Config, log *slog.Logger) (*logPipeline, error) {
	p := &logPipeline{metrics: screeningmetrics.New()}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, err
	}
	p.redisClient = redisClient

	var recent screeninglog.Store
	if redisClient != nil {
		recent = screeninglog.NewRedis(redisClient.Client, cfg.ScreeningLogTTL)
		log.Info("screening log backed by redis", "ttl", cfg.ScreeningLogTTL)
	} else {
		recent = screeninglog.NewInMemory()
	}
	p.recent = recent

	sinks := screeninglog.Fanout{recent}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(ctx, cfg.Kafka)
		if err != nil {
			p.close()
			return nil, err
		}
		p.kafkaPublisher = kafkaPublisher
		sinks = append(sinks, screeninglog.NewKafkaSink(kafkaPublisher))
		log.Info("screening log published to kafka", "topic", cfg.Kafka.ScreeningTopic)
	}

	p.publisher = screeninglog.NewPublisher(sinks,
		screeninglog.WithAsync(cfg.ScreeningLogBuffer),
		screeninglog.WithPublisherLogger(log),
		screeninglog.WithPublisherMetrics(p.metrics),
	)
	return p, nil
}
