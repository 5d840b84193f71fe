package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trust/internal/adapters/media"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
)

// GalleryStoreForOrchestrator defines the store interface needed by gallery orchestrators.
type GalleryStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (gallery.Image, error)
	Save(ctx context.Context, img gallery.Image) error
	Delete(ctx context.Context, id string) error
}

// GalleryImageInput carries the editable fields of a gallery image.
type GalleryImageInput struct {
	ImageURL    string
	PublicID    string
	Title       string
	Description string
	Category    string
}

// --- Add Gallery Image ---

// AddGalleryImageDeps holds dependencies for AddGalleryImage.
type AddGalleryImageDeps struct {
	GalleryStore GalleryStoreForOrchestrator
	Host         media.Host
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteAddGalleryImage stores a gallery image. When the image was uploaded
// to the media host and cannot be saved, the hosted asset is destroyed.
// PRE: ImageURL is http(s); Title non-empty; Category empty or known
// POST: Image persisted with generated ID
func ExecuteAddGalleryImage(ctx context.Context, input GalleryImageInput, deps AddGalleryImageDeps) (gallery.Image, error) {
	img := gallery.Image{
		ID:          deps.GenerateID(),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		PublicID:    input.PublicID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		CreatedAt:   deps.Now(),
	}
	err := img.Validate()
	if err == nil {
		err = deps.GalleryStore.Save(ctx, img)
	}
	if err != nil {
		PurgeAssets(ctx, deps.Host, []string{img.PublicID})
		return gallery.Image{}, err
	}

	slog.Info("gallery_event", "event", "image_added", "image_id", img.ID, "category", img.Category)
	return img, nil
}

// AddUploadedGalleryImagesInput carries a batch of freshly uploaded images.
type AddUploadedGalleryImagesInput struct {
	Images      []UploadedImage
	Title       string // used for every image; falls back to the file name
	Description string
	Category    string
}

// ExecuteAddUploadedGalleryImages records each uploaded image as a gallery entry.
// Entries that fail to save have their hosted asset destroyed; the first error is returned.
// POST: every returned image is persisted
func ExecuteAddUploadedGalleryImages(ctx context.Context, input AddUploadedGalleryImagesInput, deps AddGalleryImageDeps) ([]gallery.Image, error) {
	var (
		saved    []gallery.Image
		firstErr error
	)
	for _, up := range input.Images {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			title = captionFromUpload(up)
		}
		img, err := ExecuteAddGalleryImage(ctx, GalleryImageInput{
			ImageURL:    up.URL,
			PublicID:    up.PublicID,
			Title:       title,
			Description: input.Description,
			Category:    input.Category,
		}, deps)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved = append(saved, img)
	}
	return saved, firstErr
}

// --- Update Gallery Image ---

// UpdateGalleryImageDeps holds dependencies for UpdateGalleryImage.
type UpdateGalleryImageDeps struct {
	GalleryStore GalleryStoreForOrchestrator
}

// ExecuteUpdateGalleryImage overwrites title, description and category. The image itself is kept.
// PRE: image exists
// POST: fields replaced
func ExecuteUpdateGalleryImage(ctx context.Context, id string, input GalleryImageInput, deps UpdateGalleryImageDeps) (gallery.Image, error) {
	if id == "" {
		return gallery.Image{}, errors.New("image ID is required")
	}
	img, err := deps.GalleryStore.GetByID(ctx, id)
	if err != nil {
		return gallery.Image{}, err
	}
	img.Title = strings.TrimSpace(input.Title)
	img.Description = strings.TrimSpace(input.Description)
	img.Category = strings.TrimSpace(input.Category)
	if err := img.Validate(); err != nil {
		return gallery.Image{}, err
	}
	if err := deps.GalleryStore.Save(ctx, img); err != nil {
		return gallery.Image{}, err
	}

	slog.Info("gallery_event", "event", "image_updated", "image_id", img.ID)
	return img, nil
}

// --- Delete Gallery Image ---

// DeleteGalleryImageDeps holds dependencies for DeleteGalleryImage.
type DeleteGalleryImageDeps struct {
	GalleryStore GalleryStoreForOrchestrator
	Host         media.Host
}

// ExecuteDeleteGalleryImage removes an image and destroys its hosted asset if it has one.
// PRE: image exists
// POST: image gone; asset purged where possible
func ExecuteDeleteGalleryImage(ctx context.Context, id string, deps DeleteGalleryImageDeps) error {
	img, err := deps.GalleryStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := deps.GalleryStore.Delete(ctx, id); err != nil {
		return err
	}
	PurgeAssets(ctx, deps.Host, []string{img.PublicID})

	slog.Info("gallery_event", "event", "image_deleted", "image_id", id)
	return nil
}

func captionFromUpload(up UploadedImage) string {
	if c := strings.TrimSpace(event.CaptionFromFilename(up.Filename)); c != "" {
		return c
	}
	return "Untitled"
}
