package log

import "context"

// Appender is the write side of a screening-log sink. The kafka sink
// implements only this; queryable stores also implement Store.
type Appender interface {
	Append(ctx context.Context, event Event) error
}

// Store is a queryable screening-log backend.
type Store interface {
	Appender
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
