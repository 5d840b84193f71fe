package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"trust/internal/adapters/http/perf"
)

// DefaultTimeout bounds each call to the host.
const DefaultTimeout = 60 * time.Second

// uploadTransformation compresses and picks a modern format on delivery.
const uploadTransformation = "q_auto:good/f_auto"

// CloudinaryHost stores images on Cloudinary.
type CloudinaryHost struct {
	cld       *cloudinary.Cloudinary
	collector *perf.Collector
	timeout   time.Duration
}

// NewCloudinaryHost creates a host from account credentials.
// PRE: cloudName, apiKey and apiSecret are non-empty
// POST: returns a ready host or a configuration error
func NewCloudinaryHost(cloudName, apiKey, apiSecret string, collector *perf.Collector) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld, collector: collector, timeout: DefaultTimeout}, nil
}

// NewCloudinaryHostFromURL creates a host from a cloudinary:// URL.
func NewCloudinaryHostFromURL(cloudinaryURL string, collector *perf.Collector) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld, collector: collector, timeout: DefaultTimeout}, nil
}

// Configured reports true.
func (h *CloudinaryHost) Configured() bool { return true }

// Upload stores one image under req.Folder.
// PRE: req.Body yields the full file content
// POST: returns the stored asset, or an error if the host rejected it
func (h *CloudinaryHost) Upload(ctx context.Context, req UploadRequest) (Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	res, err := h.cld.Upload.Upload(ctx, req.Body, uploader.UploadParams{
		Folder:         req.Folder,
		Transformation: uploadTransformation,
	})
	if err == nil && res.Error.Message != "" {
		err = errors.New(res.Error.Message)
	}
	h.record("upload", start, err)
	if err != nil {
		slog.Error("media_upload_failed", "file", req.Name, "folder", req.Folder, "error", err)
		return Asset{}, fmt.Errorf("upload %s: %w", req.Name, err)
	}

	slog.Info("media_uploaded", "file", req.Name, "public_id", res.PublicID, "bytes", res.Bytes)
	return Asset{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Width:    res.Width,
		Height:   res.Height,
		Format:   res.Format,
		Bytes:    res.Bytes,
	}, nil
}

// Destroy removes a stored image. A missing asset is not an error.
// PRE: publicID is non-empty
func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	res, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err == nil && res.Error.Message != "" {
		err = errors.New(res.Error.Message)
	}
	h.record("destroy", start, err)
	if err != nil {
		slog.Warn("media_destroy_failed", "public_id", publicID, "error", err)
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	slog.Info("media_destroyed", "public_id", publicID, "result", res.Result)
	return nil
}

func (h *CloudinaryHost) record(name string, start time.Time, err error) {
	status := 0
	if err != nil {
		status = 1
	}
	h.collector.Record(perf.Sample{
		Kind:       perf.KindMedia,
		Name:       name,
		Status:     status,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		At:         time.Now(),
	})
}
