// Package config builds runtime configuration from environment variables so
// main stays lean. Every knob has a development default; production
// deployments override through the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full server configuration.
type Config struct {
	Addr string

	// AdminToken guards the /admin API. Empty disables admin endpoints.
	AdminToken string

	// PostgresURL selects the postgres-backed stores. Empty falls back to
	// in-memory stores with seeded defaults (development mode).
	PostgresURL string

	// PassSigningKey signs visitor pass tokens.
	PassSigningKey string

	// PassTTL bounds how long an issued pass token stays valid.
	PassTTL time.Duration

	// MatchRequireNonEmpty enables the screening guard that stops two
	// empty identity fields from counting as a match.
	MatchRequireNonEmpty bool

	// ScreeningLogTTL bounds how long screening events stay queryable in
	// the recent-events store.
	ScreeningLogTTL time.Duration

	// ScreeningLogBuffer is the async publisher's channel capacity.
	ScreeningLogBuffer int

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds Kafka connection settings for the screening-log sink.
type KafkaConfig struct {
	Brokers        []string
	ScreeningTopic string
	ConsumerGroup  string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:                 envOr("FOYER_ADDR", ":8080"),
		AdminToken:           os.Getenv("FOYER_ADMIN_TOKEN"),
		PostgresURL:          os.Getenv("FOYER_POSTGRES_URL"),
		PassSigningKey:       envOr("FOYER_PASS_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PassTTL:              envDuration("FOYER_PASS_TTL", 12*time.Hour),
		MatchRequireNonEmpty: os.Getenv("FOYER_MATCH_REQUIRE_NONEMPTY") == "true",
		ScreeningLogTTL:      envDuration("FOYER_SCREENING_LOG_TTL", 30*24*time.Hour),
		ScreeningLogBuffer:   envInt("FOYER_SCREENING_LOG_BUFFER", 1024),
		Redis: RedisConfig{
			URL:          os.Getenv("FOYER_REDIS_URL"),
			PoolSize:     envInt("FOYER_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("FOYER_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("FOYER_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("FOYER_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("FOYER_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:        splitNonEmpty(os.Getenv("FOYER_KAFKA_BROKERS")),
			ScreeningTopic: envOr("FOYER_SCREENING_LOG_TOPIC", "foyer.screening-log"),
			ConsumerGroup:  envOr("FOYER_KAFKA_GROUP", "foyer-screeninglogd"),
		},
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
