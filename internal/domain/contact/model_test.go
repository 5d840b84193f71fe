package contact_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"trust/internal/domain/contact"
)

// TestSubmission_Validate tests validation of Submission.
func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sub     contact.Submission
		wantErr error
	}{
		{
			name: "valid without phone",
			sub:  contact.Submission{Name: "Priya", Email: "priya@example.com", Message: "How can I volunteer?"},
		},
		{
			name: "valid with phone",
			sub:  contact.Submission{Name: "Priya", Email: "priya@example.com", Phone: "+91 98765 43210", Message: "Hi"},
		},
		{
			name:    "missing name",
			sub:     contact.Submission{Email: "priya@example.com", Message: "Hi"},
			wantErr: contact.ErrMissingRequired,
		},
		{
			name:    "blank message",
			sub:     contact.Submission{Name: "Priya", Email: "priya@example.com", Message: "   "},
			wantErr: contact.ErrMissingRequired,
		},
		{
			name:    "missing email wins over nothing else",
			sub:     contact.Submission{Name: "Priya", Message: "Hi"},
			wantErr: contact.ErrMissingRequired,
		},
		{
			name:    "missing field reported before bad email",
			sub:     contact.Submission{Name: "", Email: "not-an-email", Message: "Hi"},
			wantErr: contact.ErrMissingRequired,
		},
		{
			name:    "email without domain dot",
			sub:     contact.Submission{Name: "Priya", Email: "priya@example", Message: "Hi"},
			wantErr: contact.ErrInvalidEmail,
		},
		{
			name:    "email with space",
			sub:     contact.Submission{Name: "Priya", Email: "priya @example.com", Message: "Hi"},
			wantErr: contact.ErrInvalidEmail,
		},
		{
			name:    "message too long",
			sub:     contact.Submission{Name: "Priya", Email: "priya@example.com", Message: strings.Repeat("x", 5001)},
			wantErr: contact.ErrFieldTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSubmission_Normalize tests trimming of visitor input.
func TestSubmission_Normalize(t *testing.T) {
	s := contact.Submission{Name: "  Priya ", Email: " priya@example.com\n", Message: "\tHi "}
	s.Normalize()
	if s.Name != "Priya" || s.Email != "priya@example.com" || s.Message != "Hi" {
		t.Errorf("Normalize() = %+v", s)
	}
}

// TestNewCaptcha tests that generated challenges stay in range and never go negative.
func TestNewCaptcha(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		c := contact.NewCaptcha(r.IntN)
		if c.A < contact.CaptchaMinOperand || c.A > contact.CaptchaMaxOperand ||
			c.B < contact.CaptchaMinOperand || c.B > contact.CaptchaMaxOperand {
			t.Fatalf("operands out of range: %+v", c)
		}
		if c.Op != "+" && c.Op != "-" {
			t.Fatalf("unexpected operator: %+v", c)
		}
		if c.Answer() < 0 {
			t.Fatalf("negative answer for %s", c.Question())
		}
	}
}

// TestCheckAnswer tests answer comparison.
func TestCheckAnswer(t *testing.T) {
	c := contact.Captcha{A: 7, B: 3, Op: "-"}
	if c.Question() != "7 - 3" {
		t.Errorf("Question() = %q", c.Question())
	}
	tests := []struct {
		input string
		want  bool
	}{
		{"4", true},
		{" 4 ", true},
		{"5", false},
		{"four", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := contact.CheckAnswer(c.Answer(), tt.input); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
