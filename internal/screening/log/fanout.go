package log

import (
	"context"
	"errors"
)

// Fanout appends each event to every sink. All sinks are attempted even
// when one fails; the joined error is returned so the publisher logs it.
type Fanout []Appender

// Append delivers the event to every sink.
func (f Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
