package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trust/internal/domain/validation"
)

// Domain errors. Messages are shown to visitors verbatim.
var (
	ErrMissingRequired = errors.New("Name, email, and message are required")
	ErrInvalidEmail    = errors.New("Please enter a valid email address")
	ErrFieldTooLong    = errors.New("is too long")
)

// Submission is a message left through the public contact form.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"notblank,max=200"`
	Email     string    `json:"email" validate:"notblank,emailshape,max=254"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,max=40"`
	Message   string    `json:"message" validate:"notblank,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims surrounding whitespace from visitor input.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Message = strings.TrimSpace(s.Message)
}

// Validate checks if the Submission has valid data.
// Missing required fields are reported before a malformed email.
// PRE: Submission struct is populated
// POST: Returns nil if valid, ErrMissingRequired, ErrInvalidEmail or a wrapped ErrFieldTooLong
func (s *Submission) Validate() error {
	err := validation.Validate.Struct(s)
	if err == nil {
		return nil
	}
	failures := validation.Failures(err)
	if failures == nil {
		return err
	}
	if validation.HasTag(failures, validation.NotBlankTag) {
		return ErrMissingRequired
	}
	if validation.FieldFailed(failures, "email", validation.EmailShapeTag) {
		return ErrInvalidEmail
	}
	return fmt.Errorf("%s %w", failures[0].Field(), ErrFieldTooLong)
}
