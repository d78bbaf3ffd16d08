package log

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// publisherMetrics is the slice of the screening metrics the publisher
// reports to.
type publisherMetrics interface {
	RecordQueued()
	RecordDropped()
}

// Publisher delivers screening-log events to a sink. By default Emit
// appends synchronously; WithAsync switches to a buffered channel drained
// by a background worker so screening latency never waits on the sink.
type Publisher struct {
	sink    Appender
	logger  *slog.Logger
	metrics publisherMetrics

	inbox   chan Event
	done    chan struct{}
	drained chan struct{}
	once    sync.Once
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithAsync buffers up to size events and appends them from a background
// worker. Events are dropped (and counted) when the buffer is full rather
// than blocking a screening check.
func WithAsync(size int) PublisherOption {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithPublisherLogger overrides the default logger.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithPublisherMetrics wires queue/drop counters.
func WithPublisherMetrics(m publisherMetrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher constructs a publisher over the sink. When async, the worker
// starts immediately and runs until Close.
func NewPublisher(sink Appender, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:    sink,
		logger:  slog.Default(),
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		go p.run()
	}
	return p
}

// Emit delivers one event. Synchronous mode returns the sink's error;
// async mode always returns nil and reports drops through metrics.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if p.inbox == nil {
		return p.sink.Append(ctx, event)
	}

	select {
	case p.inbox <- event:
		if p.metrics != nil {
			p.metrics.RecordQueued()
		}
	default:
		if p.metrics != nil {
			p.metrics.RecordDropped()
		}
		p.logger.Warn("screening-log buffer full, event dropped", "event_id", event.ID)
	}
	return nil
}

// run drains the inbox until Close. Sink failures are logged, not retried:
// the screening log is advisory and must never wedge the pipeline.
func (p *Publisher) run() {
	defer close(p.drained)
	for {
		select {
		case event := <-p.inbox:
			p.append(event)
		case <-p.done:
			for {
				select {
				case event := <-p.inbox:
					p.append(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) append(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.sink.Append(ctx, event); err != nil {
		p.logger.Error("screening-log append failed", "event_id", event.ID, "error", err)
	}
}

// Close stops the worker after draining buffered events and waits for the
// drain to finish. Safe to call on a synchronous publisher and safe to call
// twice.
func (p *Publisher) Close() {
	p.once.Do(func() {
		close(p.done)
	})
	if p.inbox != nil {
		<-p.drained
	}
}
