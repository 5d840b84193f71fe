package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender stands in when no provider key is configured. Nothing is delivered.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send reports a skipped delivery. Malformed requests still fail so that
// callers behave the same with and without a provider.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	if _, err := req.prepare("noop@localhost"); err != nil {
		return SendResult{}, err
	}
	slog.Info("email_skipped", "provider", "none", "subject", req.Subject, "tag", req.Tag)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
		Skipped:   true,
	}, nil
}
