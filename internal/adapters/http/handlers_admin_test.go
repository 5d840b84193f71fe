package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	galleryStore "trust/internal/adapters/storage/gallery"
	"trust/internal/application/projections"
	"trust/internal/domain/donation"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
	"trust/internal/domain/news"
	"trust/internal/domain/settings"
)

// TestHandleAdminEventNew tests event creation from the admin form.
func TestHandleAdminEventNew(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		wantErr  string
	}{
		{
			name: "valid",
			form: url.Values{
				"title": {"Winter Blankets"}, "description": {"Blankets for the elderly."},
				"activity_type": {event.ActivityElderCare}, "location": {"Madurai"}, "event_date": {"2025-12-20"},
			},
			wantCode: http.StatusSeeOther,
		},
		{
			name: "unknown activity",
			form: url.Values{
				"title": {"Winter Blankets"}, "description": {"Blankets."},
				"activity_type": {"sports"}, "location": {"Madurai"}, "event_date": {"2025-12-20"},
			},
			wantCode: http.StatusBadRequest,
			wantErr:  event.ErrInvalidActivityType.Error(),
		},
		{
			name: "bad date",
			form: url.Values{
				"title": {"Winter Blankets"}, "description": {"Blankets."},
				"activity_type": {event.ActivityElderCare}, "location": {"Madurai"}, "event_date": {"20/12/2025"},
			},
			wantCode: http.StatusBadRequest,
			wantErr:  event.ErrInvalidDate.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStores(t)
			rec := httptest.NewRecorder()
			handleAdminEventNew(rec, formRequest("/admin/events/new", tt.form, &editorSession))

			if rec.Code != tt.wantCode {
				t.Fatalf("got %d, want %d", rec.Code, tt.wantCode)
			}
			n, _ := s.EventStore.Count(context.Background())
			if tt.wantErr != "" {
				if !strings.Contains(rec.Body.String(), tt.wantErr) {
					t.Errorf("body missing %q", tt.wantErr)
				}
				if n != 0 {
					t.Errorf("stored %d events, want 0", n)
				}
				return
			}
			if n != 1 {
				t.Errorf("stored %d events, want 1", n)
			}
			if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/admin/events/") || !strings.Contains(loc, "/photos") {
				t.Errorf("Location = %q, want the event photos page", loc)
			}
		})
	}
}

// TestHandleAdminEventDelete tests that deleting an event purges its hosted photos.
func TestHandleAdminEventDelete(t *testing.T) {
	s := newTestStores(t)
	host := &fakeHost{}
	SetMediaHost(host, "vasantham_trust")
	seedEvent(t, s, "e1", event.ActivityEducation, "Book Drive", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 2)

	req := formRequest("/admin/events/e1/delete", url.Values{}, &adminSession)
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	handleAdminEventDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if _, err := s.EventStore.GetByID(context.Background(), "e1"); !isNotFound(err) {
		t.Errorf("event still present: %v", err)
	}
	if len(host.destroyed) != 2 {
		t.Errorf("destroyed %v, want both photo assets", host.destroyed)
	}
	photos, _ := s.PhotoStore.ListPhotos(context.Background(), "e1")
	if len(photos) != 0 {
		t.Errorf("%d photos left after delete", len(photos))
	}
	entries, err := s.AuditStore.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "event_deleted" || entries[0].TargetID != "e1" || entries[0].ActorEmail != adminSession.Email {
		t.Errorf("audit entries = %+v, want one event_deleted by admin", entries)
	}
}

// TestHandleAdminEventPhotosUpload tests attaching uploaded photos to an event.
func TestHandleAdminEventPhotosUpload(t *testing.T) {
	s := newTestStores(t)
	host := &fakeHost{}
	SetMediaHost(host, "vasantham_trust")
	seedEvent(t, s, "e1", event.ActivityMedicalCamp, "Eye Camp", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 0)

	parts := []testPart{
		{name: "a.png", contentType: "image/png", data: pngBytes},
		{name: "b.png", contentType: "image/png", data: pngBytes},
	}
	req := multipartRequest(t, "/admin/events/e1/photos/upload", parts, nil, &editorSession)
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	handleAdminEventPhotosUpload(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	photos, err := s.PhotoStore.ListPhotos(context.Background(), "e1")
	if err != nil {
		t.Fatalf("list photos: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("stored %d photos, want 2", len(photos))
	}
	for _, p := range photos {
		if !strings.HasPrefix(p.PublicID, "vasantham_trust/events/e1/") {
			t.Errorf("PublicID = %q, want it under the event folder", p.PublicID)
		}
	}
}

// TestHandleAdminEventPhotosUpload_UpstreamFailure tests the generic message on host errors.
func TestHandleAdminEventPhotosUpload_UpstreamFailure(t *testing.T) {
	s := newTestStores(t)
	SetMediaHost(&fakeHost{fail: true}, "vasantham_trust")
	seedEvent(t, s, "e1", event.ActivityMedicalCamp, "Eye Camp", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 0)

	parts := []testPart{{name: "a.png", contentType: "image/png", data: pngBytes}}
	req := multipartRequest(t, "/admin/events/e1/photos/upload", parts, nil, &editorSession)
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	handleAdminEventPhotosUpload(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Upload failed. Please try again.") {
		t.Error("missing generic failure message")
	}
	if strings.Contains(body, "host unavailable") {
		t.Error("upstream error leaked to the page")
	}
}

// TestHandleAdminGalleryUpload tests creating gallery entries from uploads.
func TestHandleAdminGalleryUpload(t *testing.T) {
	s := newTestStores(t)
	SetMediaHost(&fakeHost{}, "vasantham_trust")

	parts := []testPart{{name: "a.png", contentType: "image/png", data: pngBytes}}
	fields := map[string]string{"title": "New Classroom", "category": gallery.CategoryConstruction}
	rec := httptest.NewRecorder()
	handleAdminGalleryUpload(rec, multipartRequest(t, "/admin/gallery/upload", parts, fields, &editorSession))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	imgs, err := s.GalleryStore.List(context.Background(), galleryStore.ListFilter{})
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}
	if len(imgs) != 1 {
		t.Fatalf("stored %d images, want 1", len(imgs))
	}
	if imgs[0].Title != "New Classroom" || imgs[0].Category != gallery.CategoryConstruction {
		t.Errorf("stored %+v", imgs[0])
	}
	if !strings.HasPrefix(imgs[0].PublicID, "vasantham_trust/gallery/") {
		t.Errorf("PublicID = %q, want it under the gallery folder", imgs[0].PublicID)
	}
}

// TestHandleAdminNewsPublish tests toggling publication.
func TestHandleAdminNewsPublish(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := s.NewsStore.Save(ctx, news.Post{ID: "n1", Title: "New Van", Excerpt: "We bought a van.", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("save post: %v", err)
	}

	for _, want := range []bool{true, false} {
		req := formRequest("/admin/news/n1/publish", url.Values{"published": {strconv.FormatBool(want)}}, &editorSession)
		req.SetPathValue("id", "n1")
		rec := httptest.NewRecorder()
		handleAdminNewsPublish(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("published=%v: got %d, want %d", want, rec.Code, http.StatusSeeOther)
		}
		p, err := s.NewsStore.GetByID(ctx, "n1")
		if err != nil {
			t.Fatalf("get post: %v", err)
		}
		if p.Published != want {
			t.Errorf("Published = %v, want %v", p.Published, want)
		}
	}

	req := formRequest("/admin/news/missing/publish", url.Values{"published": {"true"}}, &editorSession)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handleAdminNewsPublish(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// TestHandleAdminSettingsBank tests saving and rejecting bank details.
func TestHandleAdminSettingsBank(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	bad := url.Values{"account_name": {"Vasantham Trust"}, "ifsc_code": {"SBIN01"}}
	rec := httptest.NewRecorder()
	handleAdminSettingsBank(rec, formRequest("/admin/settings/bank", bad, &adminSession))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid IFSC: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), settings.ErrInvalidIFSC.Error()) {
		t.Error("body missing IFSC error")
	}

	good := url.Values{"account_name": {"Vasantham Trust"}, "account_number": {"1234567890"}, "ifsc_code": {"SBIN0001234"}, "upi_id": {"trust@sbi"}}
	rec = httptest.NewRecorder()
	handleAdminSettingsBank(rec, formRequest("/admin/settings/bank", good, &adminSession))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("valid details: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	got := projections.QueryGetBankDetails(ctx, s.SettingsStore)
	if got.IFSCCode != "SBIN0001234" || got.UPIID != "trust@sbi" {
		t.Errorf("stored %+v", got)
	}
}

// TestHandleAdminSettingsBankQR tests the QR code upload.
func TestHandleAdminSettingsBankQR(t *testing.T) {
	tests := []struct {
		name          string
		files         int
		wantCode      int
		wantDestroyed int
	}{
		{"single image", 1, http.StatusSeeOther, 0},
		{"two images", 2, http.StatusBadRequest, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStores(t)
			host := &fakeHost{}
			SetMediaHost(host, "vasantham_trust")

			var parts []testPart
			for i := 0; i < tt.files; i++ {
				parts = append(parts, testPart{name: "qr.png", contentType: "image/png", data: pngBytes})
			}
			rec := httptest.NewRecorder()
			handleAdminSettingsBankQR(rec, multipartRequest(t, "/admin/settings/bank/qr", parts, nil, &adminSession))

			if rec.Code != tt.wantCode {
				t.Fatalf("got %d, want %d", rec.Code, tt.wantCode)
			}
			if len(host.destroyed) != tt.wantDestroyed {
				t.Errorf("destroyed %v, want %d assets", host.destroyed, tt.wantDestroyed)
			}
			qr := projections.QueryGetBankDetails(context.Background(), s.SettingsStore).QRCodeURL
			if tt.wantCode == http.StatusSeeOther && !strings.HasPrefix(qr, "https://cdn.example.com/vasantham_trust/qr-codes/") {
				t.Errorf("QRCodeURL = %q", qr)
			}
			if tt.wantCode != http.StatusSeeOther && qr != settings.DefaultBankDetails().QRCodeURL {
				t.Errorf("QRCodeURL changed to %q on failure", qr)
			}
		})
	}
}

// TestHandleAdminDonations_Pager tests that page links keep the purpose filter.
func TestHandleAdminDonations_Pager(t *testing.T) {
	s := newTestStores(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		d := donation.Donation{
			ID: "d" + strconv.Itoa(i), DonorName: "Donor", DonorEmail: "donor@example.org",
			AmountPaise: 50000, Type: donation.TypeEducation, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.DonationStore.Save(context.Background(), d); err != nil {
			t.Fatalf("save donation: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	handleAdminDonations(rec, authRequest(http.MethodGet, "/admin/donations?type=education", "", adminSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "1&ndash;25 of 30") && !strings.Contains(body, "1–25 of 30") {
		t.Errorf("missing row range in pager")
	}
	if !strings.Contains(body, `href="/admin/donations?page=2&amp;type=education"`) {
		t.Errorf("next link lost the type filter")
	}

	rec = httptest.NewRecorder()
	handleAdminDonations(rec, authRequest(http.MethodGet, "/admin/donations?type=education&page=2", "", adminSession))
	if got := strings.Count(rec.Body.String(), "donor@example.org</a>"); got != 5 {
		t.Errorf("page 2 rows = %d, want 5", got)
	}
}
