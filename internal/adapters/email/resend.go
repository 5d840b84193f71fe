package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API. It is the default provider.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using apiKey, with from as the default From address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers req and returns the Resend email id.
// POST: on error nothing was accepted by Resend
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	params, err := resendParams(req, s.from)
	if err != nil {
		return SendResult{}, err
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("email_send_failed", "provider", "resend", "error", err, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("resend: %w", err)
	}

	slog.Info("email_sent", "provider", "resend", "message_id", sent.Id, "tag", req.Tag)
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

func resendParams(req SendRequest, defaultFrom string) (*resend.SendEmailRequest, error) {
	req, err := req.prepare(defaultFrom)
	if err != nil {
		return nil, err
	}
	params := &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
		Text:    req.Text,
		ReplyTo: req.ReplyTo,
	}
	if req.Tag != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: req.Tag}}
	}
	return params, nil
}
