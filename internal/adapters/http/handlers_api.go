package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"trust/internal/adapters/http/middleware"
	"trust/internal/application/orchestrators"
	"trust/internal/domain/upload"
)

// Upload request limits. A batch may carry several files of upload.MaxFileSize each.
const (
	maxUploadRequestBytes = 110 << 20
	multipartMemory       = 32 << 20
	maxContactBodyBytes   = 64 << 10
)

// uploadFilesFromRequest parses a multipart upload and returns the "files" parts.
// A request that is not multipart, or has no file parts, yields no files.
func uploadFilesFromRequest(w http.ResponseWriter, r *http.Request) ([]orchestrators.UploadFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, &upload.Error{Kind: upload.KindTooLarge, Message: "Upload too large. Maximum size is 10MB per file.", Err: err}
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	headers := r.MultipartForm.File["files"]
	files := make([]orchestrators.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, orchestrators.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        openPart(fh),
		})
	}
	return files, nil
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}

// uploadErrorStatus maps an upload failure to its status and the message shown to the caller.
func uploadErrorStatus(err error) (int, string) {
	var ue *upload.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, "Upload failed"
	}
	switch ue.Kind {
	case upload.KindUnauthorized:
		return http.StatusUnauthorized, ue.Message
	case upload.KindNoFiles, upload.KindInvalidType, upload.KindTooLarge:
		return http.StatusBadRequest, ue.Message
	default:
		return http.StatusInternalServerError, "Upload failed"
	}
}

func uploadImages(w http.ResponseWriter, r *http.Request, eventID, folder string) ([]orchestrators.UploadedImage, error) {
	files, err := uploadFilesFromRequest(w, r)
	if err != nil {
		return nil, err
	}
	if eventID == "" {
		eventID = r.FormValue("eventId")
	}
	if folder == "" {
		folder = r.FormValue("folder")
	}
	return orchestrators.ExecuteUploadImages(r.Context(), orchestrators.UploadImagesInput{
		Authenticated: middleware.IsStaff(r.Context()),
		Files:         files,
		EventID:       eventID,
		Folder:        folder,
	}, orchestrators.UploadImagesDeps{
		Host:       mediaHost,
		RootFolder: mediaRootFolder,
	})
}

type uploadResponse struct {
	Success bool                          `json:"success"`
	Results []orchestrators.UploadedImage `json:"results,omitempty"`
	Error   string                        `json:"error,omitempty"`
}

// handleAPIUpload handles POST /api/upload
func handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !middleware.IsStaff(r.Context()) {
		writeJSON(w, http.StatusUnauthorized, uploadResponse{Error: upload.ErrUnauthorized.Message})
		return
	}

	results, err := uploadImages(w, r, "", "")
	if err != nil {
		status, msg := uploadErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("upload_event", "event", "upload_failed", "error", err)
		}
		writeJSON(w, status, uploadResponse{Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, Results: results})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type contactResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleAPIContact handles POST /api/contact
func handleAPIContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req contactRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: "Invalid request body"})
		return
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}, submitContactDeps())
	if err != nil {
		msg, status := contactErrorMessage(err)
		writeJSON(w, status, contactResponse{Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Success: true, Message: orchestrators.ContactSuccessMessage})
}
