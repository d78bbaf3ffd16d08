// Package kafka wraps the franz-go client behind the two shapes foyer
// needs: a produce-only publisher for screening-log events and a
// group consumer for the archiver daemon.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"foyer/internal/platform/config"
)

// Publisher produces records to a single topic.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// NewPublisher connects to the configured brokers and ensures the topic
// exists before the first produce.
func NewPublisher(ctx context.Context, cfg config.KafkaConfig) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.ScreeningTopic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordRetries(5),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, cfg.ScreeningTopic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{client: client, topic: cfg.ScreeningTopic}, nil
}

// Publish produces one record keyed by key and blocks until the broker
// acknowledges it.
func (p *Publisher) Publish(ctx context.Context, key string, value []byte) error {
	record := &kgo.Record{Topic: p.topic, Key: []byte(key), Value: value}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes buffered records and releases the connection.
func (p *Publisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	p.client.Close()
	return nil
}

// ensureTopic creates the topic if it does not exist yet. Single partition
// keeps screening-log events globally ordered, which the archiver relies on.
func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	admin := kadm.NewClient(client)
	resp, err := admin.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}

// Handler processes one consumed record. Returning an error skips the
// commit so the record is redelivered.
type Handler func(ctx context.Context, key, value []byte) error

// Consumer reads a topic as part of a consumer group and hands each
// record to a Handler.
type Consumer struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewConsumer joins the configured consumer group on the screening topic.
func NewConsumer(cfg config.KafkaConfig, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.ConsumerGroup),
		kgo.ConsumeTopics(cfg.ScreeningTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &Consumer{client: client, logger: logger}, nil
}

// Run polls until ctx is canceled. Each record is retried in place until
// handled: polling already advanced the client past the batch, so moving on
// from a failed record would lose it until the next rebalance. Offsets are
// committed once the whole batch is handled.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return ctx.Err()
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic, "partition", partition, "error", err)
		})

		for iter := fetches.RecordIter(); !iter.Done(); {
			if err := c.handleWithRetry(ctx, iter.Next(), handle); err != nil {
				return err
			}
		}

		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			c.logger.ErrorContext(ctx, "offset commit failed", "error", err)
		}
	}
}

// handleWithRetry blocks until the record is handled or ctx ends. A handler
// that can never succeed (a poison record) must return nil itself; the
// archiver does this for undecodable events.
func (c *Consumer) handleWithRetry(ctx context.Context, record *kgo.Record, handle Handler) error {
	for {
		err := handle(ctx, record.Key, record.Value)
		if err == nil {
			return nil
		}
		c.logger.ErrorContext(ctx, "record handling failed, retrying",
			"topic", record.Topic, "offset", record.Offset, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Close leaves the group and releases the connection.
func (c *Consumer) Close() {
	c.client.Close()
}
