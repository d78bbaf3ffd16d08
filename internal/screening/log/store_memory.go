package log

import (
	"context"
	"sync"
)

// memoryCap bounds the in-memory log so a dev instance cannot grow without
// limit; oldest events are discarded first.
const memoryCap = 10000

// InMemory is a ring-buffer screening-log store for development and tests.
type InMemory struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > memoryCap {
		s.events = s.events[len(s.events)-memoryCap:]
	}
	return nil
}

func (s *InMemory) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}

	out := make([]Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
