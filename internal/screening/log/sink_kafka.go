package log

import (
	"context"
	"encoding/json"
	"fmt"

	"foyer/internal/platform/kafka"
)

// KafkaSink publishes screening-log events to the screening topic for the
// archiver daemon. It is write-only; queries go to the archive store.
type KafkaSink struct {
	publisher *kafka.Publisher
}

func NewKafkaSink(publisher *kafka.Publisher) *KafkaSink {
	return &KafkaSink{publisher: publisher}
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal screening-log event: %w", err)
	}
	return s.publisher.Publish(ctx, event.ID.String(), payload)
}

// DecodeEvent parses a kafka record value back into an Event. Used by the
// archiver's consumer handler.
func DecodeEvent(value []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return Event{}, fmt.Errorf("decode screening-log event: %w", err)
	}
	return event, nil
}
