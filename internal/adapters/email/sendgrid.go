package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender sends emails via the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender creates a sender for the given API key and default from address.
// PRE: apiKey is a valid SendGrid API key
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send delivers req through SendGrid.
// POST: on error SendGrid did not accept the message (transport failure or a 4xx/5xx)
func (s *SendGridSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	m, err := sendGridMail(req, s.from)
	if err != nil {
		return SendResult{}, err
	}

	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		slog.Error("email_send_failed", "provider", "sendgrid", "error", err, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		slog.Error("email_send_failed", "provider", "sendgrid", "status", res.StatusCode, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("sendgrid: rejected with status %d", res.StatusCode)
	}

	id := ""
	if v, ok := res.Headers["X-Message-Id"]; ok && len(v) > 0 {
		id = v[0]
	}
	slog.Info("email_sent", "provider", "sendgrid", "message_id", id, "tag", req.Tag)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}

func sendGridMail(req SendRequest, defaultFrom string) (*sgmail.SGMailV3, error) {
	req, err := req.prepare(defaultFrom)
	if err != nil {
		return nil, err
	}
	m := sgmail.NewV3Mail()
	m.SetFrom(sgAddress(req.From))
	p := sgmail.NewPersonalization()
	p.Subject = req.Subject
	for _, to := range req.To {
		p.AddTos(sgAddress(to))
	}
	m.AddPersonalizations(p)
	m.Subject = req.Subject
	// SendGrid requires text/plain before text/html.
	if req.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", req.Text))
	}
	m.AddContent(sgmail.NewContent("text/html", req.HTML))
	if req.ReplyTo != "" {
		m.SetReplyTo(sgAddress(req.ReplyTo))
	}
	if req.Tag != "" {
		m.AddCategories(req.Tag)
	}
	return m, nil
}

// sgAddress accepts either "Name <addr>" or a bare address.
func sgAddress(s string) *sgmail.Email {
	if a, err := mail.ParseAddress(s); err == nil {
		return sgmail.NewEmail(a.Name, a.Address)
	}
	return sgmail.NewEmail("", s)
}
