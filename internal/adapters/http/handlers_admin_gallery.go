package web

import (
	"errors"
	"net/http"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/gallery"
	"trust/internal/domain/upload"
)

// galleryFolder is the media host folder for standalone gallery uploads.
const galleryFolder = "gallery"

func galleryInputFromForm(r *http.Request) orchestrators.GalleryImageInput {
	return orchestrators.GalleryImageInput{
		ImageURL:    r.FormValue("image_url"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
}

func renderAdminGallery(w http.ResponseWriter, r *http.Request, status int, input orchestrators.GalleryImageInput, formErr string) {
	result, err := projections.QueryGetGallery(r.Context(), r.URL.Query().Get("category"), stores.GalleryStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_gallery.html", map[string]any{
		"Title":       "Gallery",
		"Result":      result,
		"Input":       input,
		"Error":       formErr,
		"Flash":       flashFrom(r),
		"MediaOnline": mediaHost.Configured(),
	})
}

// handleAdminGallery handles GET /admin/gallery?category=
func handleAdminGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderAdminGallery(w, r, http.StatusOK, orchestrators.GalleryImageInput{}, "")
}

// handleAdminGalleryCreate handles POST /admin/gallery/create (image by URL)
func handleAdminGalleryCreate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := galleryInputFromForm(r)
	img, err := orchestrators.ExecuteAddGalleryImage(r.Context(), input, addGalleryDeps())
	if err != nil {
		if isInputError(err) {
			renderAdminGallery(w, r, http.StatusBadRequest, input, err.Error())
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "gallery_image_created", img.ID)
	redirectWithFlash(w, r, "/admin/gallery", "created")
}

func addGalleryDeps() orchestrators.AddGalleryImageDeps {
	return orchestrators.AddGalleryImageDeps{
		GalleryStore: stores.GalleryStore,
		Host:         mediaHost,
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

// handleAdminGalleryUpload handles POST /admin/gallery/upload (multipart files)
func handleAdminGalleryUpload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	images, err := uploadImages(w, r, "", galleryFolder)
	input := orchestrators.GalleryImageInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if err != nil {
		status, msg := uploadErrorStatus(err)
		var ue *upload.Error
		if !errors.As(err, &ue) || ue.Kind == upload.KindUpstream {
			msg = "Upload failed. Please try again."
		}
		renderAdminGallery(w, r, status, input, msg)
		return
	}
	saved, err := orchestrators.ExecuteAddUploadedGalleryImages(r.Context(), orchestrators.AddUploadedGalleryImagesInput{
		Images:      images,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
	}, addGalleryDeps())
	if err != nil {
		if isInputError(err) && len(saved) == 0 {
			renderAdminGallery(w, r, http.StatusBadRequest, input, err.Error())
			return
		}
		if len(saved) == 0 {
			internalError(w, err)
			return
		}
	}
	for _, img := range saved {
		logAdminAction(r, "gallery_image_created", img.ID)
	}
	redirectWithFlash(w, r, "/admin/gallery", "uploaded")
}

func renderGalleryForm(w http.ResponseWriter, r *http.Request, status int, img gallery.Image, formErr string) {
	renderTemplateStatus(w, r, status, "admin_gallery_form.html", map[string]any{
		"Title": "Edit Image",
		"Image": img,
		"Error": formErr,
	})
}

// handleAdminGalleryEdit handles GET and POST /admin/gallery/{id}/edit
func handleAdminGalleryEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	img, err := stores.GalleryStore.GetByID(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		renderGalleryForm(w, r, http.StatusOK, img, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := galleryInputFromForm(r)
		if _, err := orchestrators.ExecuteUpdateGalleryImage(r.Context(), id, input, orchestrators.UpdateGalleryImageDeps{
			GalleryStore: stores.GalleryStore,
		}); err != nil {
			if isInputError(err) {
				img.Title, img.Description, img.Category = input.Title, input.Description, input.Category
				renderGalleryForm(w, r, http.StatusBadRequest, img, err.Error())
				return
			}
			internalError(w, err)
			return
		}
		logAdminAction(r, "gallery_image_updated", id)
		redirectWithFlash(w, r, "/admin/gallery", "updated")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminGalleryDelete handles POST /admin/gallery/{id}/delete
func handleAdminGalleryDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	err := orchestrators.ExecuteDeleteGalleryImage(r.Context(), id, orchestrators.DeleteGalleryImageDeps{
		GalleryStore: stores.GalleryStore,
		Host:         mediaHost,
	})
	if err != nil && !isNotFound(err) {
		internalError(w, err)
		return
	}
	logAdminAction(r, "gallery_image_deleted", id)
	redirectWithFlash(w, r, "/admin/gallery", "deleted")
}
