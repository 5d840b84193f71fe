package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	emailAdapter "trust/internal/adapters/email"
	"trust/internal/domain/contact"
	"trust/internal/domain/settings"
)

// ContactStoreForOrchestrator defines the store interface needed by contact orchestrators.
type ContactStoreForOrchestrator interface {
	Save(ctx context.Context, s contact.Submission) error
}

// SettingsReader is the read side of the settings store.
type SettingsReader interface {
	Get(ctx context.Context, key string) (settings.Setting, error)
}

// DefaultNotifyFrom is the sender used for contact notifications.
const DefaultNotifyFrom = "donate@vasanthamtrust.com"

// ContactEmailTag is the provider category on contact notifications.
const ContactEmailTag = "contact_form"

// DefaultNotifyTimeout bounds the notification send.
const DefaultNotifyTimeout = 10 * time.Second

// Notification outcomes, logged as the "outcome" attribute.
const (
	NotifySent                 = "sent"
	NotifySkippedNoRecipient   = "skipped_no_recipient"
	NotifySkippedNotConfigured = "skipped_not_configured"
	NotifyFailed               = "failed"
)

// ContactSuccessMessage is returned to the visitor after a stored submission.
const ContactSuccessMessage = "Your message has been sent successfully!"

// ErrContactNotSaved is shown when the submission could not be persisted.
var ErrContactNotSaved = errors.New("Failed to save your message. Please try again.")

// SubmitContactInput carries input for the submit contact orchestrator.
type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	ContactStore  ContactStoreForOrchestrator
	SettingsStore SettingsReader
	Sender        emailAdapter.Sender
	From          string
	NotifyTimeout time.Duration
	GenerateID    func() string
	Now           func() time.Time
}

// SubmitContactResult reports the stored submission and what happened to the notification.
type SubmitContactResult struct {
	Submission    contact.Submission
	NotifyOutcome string
}

// ExecuteSubmitContact validates and stores a contact submission, then
// notifies the configured address. The notification never affects the result.
// PRE: none; input comes straight from the visitor
// POST: on nil error the submission is persisted; a domain validation error
// (contact.ErrMissingRequired, contact.ErrInvalidEmail, contact.ErrFieldTooLong)
// or ErrContactNotSaved otherwise
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) (SubmitContactResult, error) {
	sub := contact.Submission{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	}
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return SubmitContactResult{}, err
	}

	sub.ID = deps.GenerateID()
	sub.CreatedAt = deps.Now()
	if err := deps.ContactStore.Save(ctx, sub); err != nil {
		slog.Error("contact_event", "event", "contact_save_failed", "error", err)
		return SubmitContactResult{}, fmt.Errorf("%w: %v", ErrContactNotSaved, err)
	}
	slog.Info("contact_event", "event", "contact_submitted", "submission_id", sub.ID)

	outcome := NotifyContact(ctx, sub, deps)
	return SubmitContactResult{Submission: sub, NotifyOutcome: outcome}, nil
}

// NotifyContact emails the stored submission to the notification address in
// the contact details setting. It is best-effort: every failure is logged and
// reported as an outcome, never returned. The send is detached from the
// caller's cancellation and bounded by NotifyTimeout.
func NotifyContact(ctx context.Context, sub contact.Submission, deps SubmitContactDeps) string {
	recipient := notificationRecipient(ctx, deps.SettingsStore)
	if recipient == "" {
		return logNotify(sub, NotifySkippedNoRecipient, nil)
	}
	if deps.Sender == nil {
		return logNotify(sub, NotifySkippedNotConfigured, nil)
	}

	html, err := renderContactEmail(sub)
	if err != nil {
		return logNotify(sub, NotifyFailed, err)
	}

	timeout := deps.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	from := deps.From
	if from == "" {
		from = DefaultNotifyFrom
	}
	res, err := deps.Sender.Send(sendCtx, emailAdapter.SendRequest{
		To:      []string{recipient},
		From:    from,
		Subject: "New Contact Form Submission from " + sub.Name,
		HTML:    html,
		Text:    plainContactEmail(sub),
		ReplyTo: sub.Email,
		Tag:     ContactEmailTag,
	})
	switch {
	case err != nil:
		return logNotify(sub, NotifyFailed, err)
	case res.Skipped:
		return logNotify(sub, NotifySkippedNotConfigured, nil)
	}
	return logNotify(sub, NotifySent, nil)
}

func notificationRecipient(ctx context.Context, store SettingsReader) string {
	if store == nil {
		return ""
	}
	st, err := store.Get(ctx, settings.KeyContactDetails)
	if err != nil {
		return ""
	}
	details, err := settings.DecodeContactDetails(st.Value)
	if err != nil {
		slog.Warn("settings_decode_failed", "key", settings.KeyContactDetails, "error", err)
		return ""
	}
	return details.NotificationEmail
}

func logNotify(sub contact.Submission, outcome string, err error) string {
	if err != nil {
		slog.Error("contact_event", "event", "notification_"+outcome, "submission_id", sub.ID, "outcome", outcome, "error", err)
		return outcome
	}
	slog.Info("contact_event", "event", "notification_"+outcome, "submission_id", sub.ID, "outcome", outcome)
	return outcome
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">New Contact Form Submission</h2>
  <p>You have received a new message through the website contact form.</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    {{- if .Phone}}
    <p><strong>Phone:</strong> {{.Phone}}</p>
    {{- end}}
    <p><strong>Message:</strong></p>
    <p style="white-space: pre-wrap; background: #fff; padding: 15px; border-radius: 4px;">{{.Message}}</p>
  </div>
  <p style="color: #666; font-size: 14px;">This email was sent automatically from the Vasantham Charitable Trust website.</p>
</div>`))

func renderContactEmail(sub contact.Submission) (string, error) {
	var buf bytes.Buffer
	if err := contactEmailTemplate.Execute(&buf, sub); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func plainContactEmail(sub contact.Submission) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", sub.Name, sub.Email)
	if sub.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n", sub.Message)
	return b.String()
}
