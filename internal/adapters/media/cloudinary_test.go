package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trust/internal/adapters/http/perf"
)

// fakeCloudinary answers the upload and destroy endpoints of the Cloudinary API
// and records the folder of each upload and the path of every call.
func fakeCloudinary(t *testing.T, uploadStatus int, uploadBody string) (*httptest.Server, *[]string, *[]string) {
	t.Helper()
	var folders, paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/upload"):
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse upload: %v", err)
			}
			folders = append(folders, r.FormValue("folder"))
			w.WriteHeader(uploadStatus)
			io.WriteString(w, uploadBody)
		case strings.HasSuffix(r.URL.Path, "/destroy"):
			io.WriteString(w, `{"result":"ok"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &folders, &paths
}

func testHost(t *testing.T, srv *httptest.Server, collector *perf.Collector) *CloudinaryHost {
	t.Helper()
	h, err := NewCloudinaryHost("demo", "key", "secret", collector)
	if err != nil {
		t.Fatalf("NewCloudinaryHost: %v", err)
	}
	// The upload API keeps its own copy of the configuration.
	h.cld.Upload.Config.API.UploadPrefix = srv.URL
	h.timeout = 5 * time.Second
	return h
}

// TestCloudinaryHost_Upload tests the asset mapping and the recorded timing.
func TestCloudinaryHost_Upload(t *testing.T) {
	srv, folders, paths := fakeCloudinary(t, http.StatusOK, `{
		"public_id": "vasantham_trust/events/e1/abc",
		"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/vasantham_trust/events/e1/abc.jpg",
		"width": 800, "height": 600, "format": "jpg", "bytes": 12345}`)
	collector := perf.NewCollector(16)
	h := testHost(t, srv, collector)

	asset, err := h.Upload(context.Background(), UploadRequest{Name: "a.jpg", Folder: "vasantham_trust/events/e1", Body: strings.NewReader("jpeg bytes")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if asset.PublicID != "vasantham_trust/events/e1/abc" || asset.Width != 800 || asset.Height != 600 || !strings.HasPrefix(asset.URL, "https://") {
		t.Errorf("asset = %+v", asset)
	}
	if len(*folders) != 1 || (*folders)[0] != "vasantham_trust/events/e1" {
		t.Errorf("folders = %v", *folders)
	}
	if collector.TotalRecorded() != 1 {
		t.Errorf("recorded = %d, want 1", collector.TotalRecorded())
	}

	if err := h.Destroy(context.Background(), asset.PublicID); err != nil {
		t.Errorf("Destroy: %v", err)
	}
	if len(*paths) != 2 || !strings.HasSuffix((*paths)[0], "/demo/auto/upload") || !strings.HasSuffix((*paths)[1], "/demo/image/destroy") {
		t.Errorf("paths = %v, want upload then destroy on the fake server", *paths)
	}
}

// TestCloudinaryHost_UploadRejected tests that an API error body becomes an error.
func TestCloudinaryHost_UploadRejected(t *testing.T) {
	srv, _, paths := fakeCloudinary(t, http.StatusBadRequest, `{"error":{"message":"Invalid image file"}}`)
	h := testHost(t, srv, nil)

	_, err := h.Upload(context.Background(), UploadRequest{Name: "bad.png", Folder: "f", Body: strings.NewReader("x")})
	if err == nil || !strings.Contains(err.Error(), "Invalid image file") {
		t.Fatalf("Upload error = %v", err)
	}
	if len(*paths) != 1 {
		t.Errorf("fake server saw %v, want one upload", *paths)
	}
}

// TestDisabledHost tests that the fallback host refuses every call.
func TestDisabledHost(t *testing.T) {
	var h Host = DisabledHost{}
	if h.Configured() {
		t.Error("DisabledHost reports configured")
	}
	if _, err := h.Upload(context.Background(), UploadRequest{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Upload = %v", err)
	}
	if err := h.Destroy(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Destroy = %v", err)
	}
}
