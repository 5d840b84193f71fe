package news

import (
	"errors"
	"strings"
	"time"
)

const (
	MaxTitleLength   = 200
	MaxExcerptLength = 500
	MaxBodyLength    = 20000
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("news title cannot be empty")
	ErrEmptyExcerpt     = errors.New("news excerpt cannot be empty")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrAlreadyPublished = errors.New("news post is already published")
	ErrNotPublished     = errors.New("news post is not published")
)

// Post is a news item. Body is optional Markdown.
type Post struct {
	ID        string
	Title     string
	Excerpt   string
	Body      string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		return ErrEmptyExcerpt
	}
	if len(p.Title) > MaxTitleLength || len(p.Excerpt) > MaxExcerptLength || len(p.Body) > MaxBodyLength {
		return ErrFieldTooLong
	}
	return nil
}

// Publish makes the post visible on public pages.
// PRE: Post is not published
// POST: Published is true, UpdatedAt set
func (p *Post) Publish(now time.Time) error {
	if p.Published {
		return ErrAlreadyPublished
	}
	p.Published = true
	p.UpdatedAt = now
	return nil
}

// Unpublish hides the post from public pages.
// PRE: Post is published
// POST: Published is false, UpdatedAt set
func (p *Post) Unpublish(now time.Time) error {
	if !p.Published {
		return ErrNotPublished
	}
	p.Published = false
	p.UpdatedAt = now
	return nil
}
