// Package media stores uploaded images on an external image host.
package media

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when no media host credentials are set.
var ErrNotConfigured = errors.New("media host not configured")

// Asset describes a stored image.
type Asset struct {
	URL      string // public https URL
	PublicID string // host identifier used for deletion
	Width    int
	Height   int
	Format   string
	Bytes    int
}

// UploadRequest is one image to store.
type UploadRequest struct {
	Name   string // original filename, for logs
	Folder string
	Body   io.Reader
}

// Host is the interface for the external image host.
type Host interface {
	Upload(ctx context.Context, req UploadRequest) (Asset, error)
	Destroy(ctx context.Context, publicID string) error
	Configured() bool
}

// DisabledHost rejects every call. It is used when credentials are missing
// so the rest of the site keeps working.
type DisabledHost struct{}

// Upload always fails with ErrNotConfigured.
func (DisabledHost) Upload(context.Context, UploadRequest) (Asset, error) {
	return Asset{}, ErrNotConfigured
}

// Destroy always fails with ErrNotConfigured.
func (DisabledHost) Destroy(context.Context, string) error {
	return ErrNotConfigured
}

// Configured reports false.
func (DisabledHost) Configured() bool { return false }
