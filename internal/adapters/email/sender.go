package email

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned by senders that have no provider credentials.
	ErrNotConfigured = errors.New("email provider not configured")
	ErrNoRecipients  = errors.New("email has no recipients")
	ErrNoSender      = errors.New("email has no from address")
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address, e.g. "Vasantham Trust <donate@vasanthamtrust.com>"
	Subject string
	HTML    string // HTML body
	Text    string // optional plain-text alternative
	ReplyTo string
	Tag     string // provider-side category, e.g. "contact_form"
}

// prepare fills From from the sender default and drops blank recipients.
func (r SendRequest) prepare(defaultFrom string) (SendRequest, error) {
	if strings.TrimSpace(r.From) == "" {
		r.From = defaultFrom
	}
	if strings.TrimSpace(r.From) == "" {
		return r, ErrNoSender
	}
	to := make([]string, 0, len(r.To))
	for _, addr := range r.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		return r, ErrNoRecipients
	}
	r.To = to
	return r, nil
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
	Skipped   bool      // true when no provider is configured and nothing left the server
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
