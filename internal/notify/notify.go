// Package notify delivers customer messages. The demo has no SMS gateway, so
// LogNotifier writes messages to the log instead.
package notify

import (
	"context"
	"log/slog"
)

type Notifier interface {
	SendSMS(ctx context.Context, msisdn, body string) error
}

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendSMS(ctx context.Context, msisdn, body string) error {
	n.log.InfoContext(ctx, "demo sms", "channel", "sms", "to", msisdn, "body", body)
	return nil
}
