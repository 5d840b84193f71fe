package audit

import (
	"errors"
	"strings"
	"time"
)

// MaxActionLength bounds the stored action name.
const MaxActionLength = 64

// Domain errors
var (
	ErrEmptyAction = errors.New("audit entry action cannot be empty")
	ErrEmptyActor  = errors.New("audit entry must name the acting account")
	ErrActionLong  = errors.New("audit entry action exceeds 64 characters")
)

// Entry records one change made through the admin panel.
// Action names follow the log event names, e.g. "event_created".
type Entry struct {
	ID         string
	Timestamp  time.Time
	Action     string
	ActorID    string
	ActorEmail string
	ActorRole  string
	TargetID   string
	IPAddress  string
}

// Validate checks if the Entry has valid data.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Action) == "" {
		return ErrEmptyAction
	}
	if len(e.Action) > MaxActionLength {
		return ErrActionLong
	}
	if e.ActorID == "" && e.ActorEmail == "" {
		return ErrEmptyActor
	}
	return nil
}

// Resource returns the kind of record the action touched: the action
// name up to its last underscore ("gallery_image_created" -> "gallery image").
func (e Entry) Resource() string {
	i := strings.LastIndex(e.Action, "_")
	if i <= 0 {
		return e.Action
	}
	return strings.ReplaceAll(e.Action[:i], "_", " ")
}

// Verb returns the past-tense verb of the action ("created", "deleted").
func (e Entry) Verb() string {
	i := strings.LastIndex(e.Action, "_")
	if i < 0 {
		return e.Action
	}
	return e.Action[i+1:]
}
