package upload

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 10 << 20

// SniffLength is how many leading bytes are read for content detection.
const SniffLength = 3072

// DefaultRootFolder is the media host folder all uploads live under.
const DefaultRootFolder = "vasantham_trust"

// AllowedTypes lists the accepted image MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/avif"}

// Kind classifies an upload failure.
type Kind int

const (
	KindUnauthorized Kind = iota + 1
	KindNoFiles
	KindInvalidType
	KindTooLarge
	KindUpstream
)

// String returns the log name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNoFiles:
		return "no_files"
	case KindInvalidType:
		return "invalid_type"
	case KindTooLarge:
		return "too_large"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// Error is a typed upload failure. Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never shown
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnauthorized is returned when no admin session is present.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}

// ErrNoFiles is returned for an empty batch.
var ErrNoFiles = &Error{Kind: KindNoFiles, Message: "No files provided"}

// File describes one candidate upload before any bytes leave the server.
type File struct {
	Name         string
	DeclaredType string // Content-Type from the multipart part, may be empty
	Size         int64
	Head         []byte // first SniffLength bytes of content
}

// CheckFile rejects a file whose type or size is not accepted.
// Checks run in order: declared type, size, then sniffed content, so an
// oversize file declared as an image always reports KindTooLarge.
// POST: returns nil or an *Error of KindInvalidType / KindTooLarge
func CheckFile(f File) error {
	if f.DeclaredType != "" {
		mt, _, err := mime.ParseMediaType(f.DeclaredType)
		if err != nil || !IsAllowedType(mt) {
			return invalidType(f.Name)
		}
	}
	if f.Size > MaxFileSize {
		return &Error{Kind: KindTooLarge, Message: fmt.Sprintf("File too large: %s. Maximum size is 10MB.", f.Name)}
	}
	if !isAllowedMIME(mimetype.Detect(f.Head)) {
		return invalidType(f.Name)
	}
	return nil
}

func invalidType(name string) *Error {
	return &Error{Kind: KindInvalidType, Message: fmt.Sprintf("Invalid file type: %s. Only images are allowed.", name)}
}

// IsAllowedType reports whether mt is an accepted image type.
func IsAllowedType(mt string) bool {
	mt = strings.ToLower(strings.TrimSpace(mt))
	for _, t := range AllowedTypes {
		if t == mt {
			return true
		}
	}
	return false
}

func isAllowedMIME(m *mimetype.MIME) bool {
	for _, t := range AllowedTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// Folder resolves the destination folder on the media host.
// An explicit folder wins, then an event id, then the generic events folder.
func Folder(root, folder, eventID string) string {
	if root == "" {
		root = DefaultRootFolder
	}
	if f := cleanSegment(folder); f != "" {
		return root + "/" + f
	}
	if id := cleanSegment(eventID); id != "" && !strings.Contains(id, "/") {
		return root + "/events/" + id
	}
	return root + "/events"
}

// cleanSegment keeps letters, digits, dash, underscore and inner slashes,
// and refuses anything that would climb out of the root.
func cleanSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '/', r == '.':
			b.WriteRune(r)
		}
	}
	cleaned := path.Clean("/" + b.String())
	cleaned = strings.Trim(cleaned, "/.")
	if cleaned == "" || strings.Contains(cleaned, "..") {
		return ""
	}
	return cleaned
}
