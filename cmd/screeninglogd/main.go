// Command screeninglogd archives screening-log events from Kafka into
// postgres. It runs alongside the API server; the durable archive survives
// the Redis retention window.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"foyer/internal/platform/config"
	"foyer/internal/platform/kafka"
	"foyer/internal/platform/logger"
	screeninglog "foyer/internal/screening/log"
	"foyer/migrations"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("archiver exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.PostgresURL == "" {
		return fmt.Errorf("FOYER_POSTGRES_URL is required")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("FOYER_KAFKA_BROKERS is required")
	}

	db, err := sql.Open("pgx", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}
	archive := screeninglog.NewPostgres(db)

	consumer, err := kafka.NewConsumer(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	log.Info("archiving screening-log events",
		"topic", cfg.Kafka.ScreeningTopic,
		"group", cfg.Kafka.ConsumerGroup,
	)

	err = consumer.Run(ctx, func(ctx context.Context, _, value []byte) error {
		event, err := screeninglog.DecodeEvent(value)
		if err != nil {
			// A malformed record never becomes parseable; log and move on.
			log.ErrorContext(ctx, "dropping undecodable event", "error", err)
			return nil
		}
		return archive.Append(ctx, event)
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
