package service

import (
	"context"
	"log/slog"
)

// SlogNotifier writes match notifications to the structured log. It stands
// in for a real mail transport in development; deployments plug an SMTP or
// webhook Notifier in its place.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(ctx context.Context, recipients []string, subject, _ string) error {
	n.logger.InfoContext(ctx, "match notification",
		"recipients", recipients,
		"subject", subject,
	)
	return nil
}
