package audit_test

import (
	"strings"
	"testing"

	"trust/internal/domain/audit"
)

// TestEntry_Validate tests validation of Entry.
func TestEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   audit.Entry
		wantErr error
	}{
		{name: "valid", entry: audit.Entry{Action: "event_created", ActorEmail: "a@b.org"}},
		{name: "actor id only", entry: audit.Entry{Action: "news_deleted", ActorID: "acct-1"}},
		{name: "empty action", entry: audit.Entry{ActorID: "acct-1"}, wantErr: audit.ErrEmptyAction},
		{name: "no actor", entry: audit.Entry{Action: "news_deleted"}, wantErr: audit.ErrEmptyActor},
		{name: "long action", entry: audit.Entry{Action: strings.Repeat("x", 65), ActorID: "a"}, wantErr: audit.ErrActionLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestEntry_ResourceAndVerb tests splitting action names for display.
func TestEntry_ResourceAndVerb(t *testing.T) {
	tests := []struct {
		action, resource, verb string
	}{
		{"event_created", "event", "created"},
		{"gallery_image_deleted", "gallery image", "deleted"},
		{"bank_qr_uploaded", "bank qr", "uploaded"},
		{"login", "login", "login"},
	}
	for _, tt := range tests {
		e := audit.Entry{Action: tt.action}
		if got := e.Resource(); got != tt.resource {
			t.Errorf("Resource(%q) = %q, want %q", tt.action, got, tt.resource)
		}
		if got := e.Verb(); got != tt.verb {
			t.Errorf("Verb(%q) = %q, want %q", tt.action, got, tt.verb)
		}
	}
}
