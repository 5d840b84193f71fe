package orchestrators

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"trust/internal/adapters/media"
	"trust/internal/domain/event"
	"trust/internal/domain/upload"
)

// maxConcurrentUploads bounds parallel calls to the media host per batch.
const maxConcurrentUploads = 4

// UploadFile is one file of an upload batch.
// Open may be called more than once; each call returns the content from the start.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadImagesInput carries input for the upload orchestrator.
type UploadImagesInput struct {
	Authenticated bool
	Files         []UploadFile
	EventID       string
	Folder        string
}

// UploadImagesDeps holds dependencies for UploadImages.
type UploadImagesDeps struct {
	Host       media.Host
	RootFolder string
}

// UploadedImage is one stored file, in request order.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// ExecuteUploadImages relays a batch of images to the media host.
// Every file is checked before any upload starts, so a rejected batch makes
// no external call. Accepted files upload concurrently. If any upload fails,
// the files already stored are destroyed and the batch fails as a whole.
// PRE: none
// POST: on success one UploadedImage per file in input order; on failure an
// *upload.Error and nothing left on the media host
func ExecuteUploadImages(ctx context.Context, input UploadImagesInput, deps UploadImagesDeps) ([]UploadedImage, error) {
	if !input.Authenticated {
		return nil, upload.ErrUnauthorized
	}
	if len(input.Files) == 0 {
		return nil, upload.ErrNoFiles
	}
	for _, f := range input.Files {
		if err := checkUploadFile(f); err != nil {
			slog.Info("upload_event", "event", "upload_rejected", "file", f.Name, "reason", uploadKind(err))
			return nil, err
		}
	}

	folder := upload.Folder(deps.RootFolder, input.Folder, input.EventID)
	results := make([]UploadedImage, len(input.Files))
	stored := make([]string, len(input.Files))

	// Uploads in flight run to completion even after a sibling fails or the
	// client goes away, so the cleanup below sees every asset that was created.
	// Files not yet started are skipped once any upload has failed.
	upCtx := context.WithoutCancel(ctx)
	var g errgroup.Group
	g.SetLimit(maxConcurrentUploads)
	var failed atomic.Bool
	for i, f := range input.Files {
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			err := uploadOne(upCtx, deps.Host, folder, f, i, stored, results)
			if err != nil {
				failed.Store(true)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		purged := PurgeAssets(upCtx, deps.Host, stored)
		slog.Error("upload_event", "event", "upload_failed", "files", len(input.Files), "purged", purged, "error", err)
		return nil, &upload.Error{Kind: upload.KindUpstream, Message: "Upload failed", Err: err}
	}

	slog.Info("upload_event", "event", "upload_completed", "files", len(results), "folder", folder)
	return results, nil
}

// uploadOne stores file i and records its public id in stored[i].
func uploadOne(ctx context.Context, host media.Host, folder string, f UploadFile, i int, stored []string, results []UploadedImage) error {
	body, err := f.Open()
	if err != nil {
		return err
	}
	defer body.Close()
	asset, err := host.Upload(ctx, media.UploadRequest{Name: f.Name, Folder: folder, Body: body})
	if err != nil {
		return err
	}
	stored[i] = asset.PublicID
	results[i] = UploadedImage{
		URL:      asset.URL,
		PublicID: asset.PublicID,
		Filename: f.Name,
		Width:    asset.Width,
		Height:   asset.Height,
	}
	return nil
}

func checkUploadFile(f UploadFile) error {
	head, err := readHead(f)
	if err != nil {
		return &upload.Error{Kind: upload.KindInvalidType, Message: "Could not read file: " + f.Name, Err: err}
	}
	return upload.CheckFile(upload.File{
		Name:         f.Name,
		DeclaredType: f.ContentType,
		Size:         f.Size,
		Head:         head,
	})
}

func readHead(f UploadFile) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	head := make([]byte, upload.SniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

func uploadKind(err error) string {
	var ue *upload.Error
	if errors.As(err, &ue) {
		return ue.Kind.String()
	}
	return "unknown"
}

// PurgeAssets destroys the given media assets, skipping empty ids.
// Failures are logged; it returns how many were destroyed.
func PurgeAssets(ctx context.Context, host media.Host, publicIDs []string) int {
	if host == nil || !host.Configured() {
		return 0
	}
	ctx = context.WithoutCancel(ctx)
	purged := 0
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := host.Destroy(ctx, id); err != nil {
			slog.Warn("media_purge_failed", "public_id", id, "error", err)
			continue
		}
		purged++
	}
	return purged
}

// --- Attach uploaded photos to an event ---

// EventPhotoStoreForOrchestrator defines the photo store interface needed by event orchestrators.
type EventPhotoStoreForOrchestrator interface {
	GetPhoto(ctx context.Context, id string) (event.Photo, error)
	SavePhotos(ctx context.Context, photos []event.Photo) error
	DeletePhoto(ctx context.Context, id string) error
	ListPhotos(ctx context.Context, eventID string) ([]event.Photo, error)
}

// AttachUploadedPhotosInput carries input for AttachUploadedPhotos.
type AttachUploadedPhotosInput struct {
	EventID string
	Images  []UploadedImage
}

// AttachUploadedPhotosDeps holds dependencies for AttachUploadedPhotos.
type AttachUploadedPhotosDeps struct {
	EventStore EventStoreForOrchestrator
	PhotoStore EventPhotoStoreForOrchestrator
	Host       media.Host
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAttachUploadedPhotos records uploaded images as photos of an event,
// captioned from their filenames. If the photos cannot be saved the uploaded
// assets are destroyed so nothing is orphaned on the media host.
// PRE: the event exists; images came from ExecuteUploadImages
// POST: one photo per image persisted, or none
func ExecuteAttachUploadedPhotos(ctx context.Context, input AttachUploadedPhotosInput, deps AttachUploadedPhotosDeps) ([]event.Photo, error) {
	publicIDs := make([]string, len(input.Images))
	for i, img := range input.Images {
		publicIDs[i] = img.PublicID
	}
	fail := func(err error) ([]event.Photo, error) {
		PurgeAssets(ctx, deps.Host, publicIDs)
		return nil, err
	}

	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return fail(err)
	}

	now := deps.Now()
	photos := make([]event.Photo, 0, len(input.Images))
	for _, img := range input.Images {
		p := event.Photo{
			ID:        deps.GenerateID(),
			EventID:   input.EventID,
			ImageURL:  img.URL,
			PublicID:  img.PublicID,
			Caption:   event.CaptionFromFilename(img.Filename),
			CreatedAt: now,
		}
		if err := p.Validate(); err != nil {
			return fail(err)
		}
		photos = append(photos, p)
	}
	if err := deps.PhotoStore.SavePhotos(ctx, photos); err != nil {
		return fail(err)
	}

	slog.Info("event_event", "event", "photos_attached", "event_id", input.EventID, "count", len(photos))
	return photos, nil
}
