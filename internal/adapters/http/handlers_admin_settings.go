package web

import (
	"errors"
	"net/http"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/settings"
	"trust/internal/domain/upload"
)

// qrCodeFolder is the media host folder for donation QR codes.
const qrCodeFolder = "qr-codes"

func saveSettingsDeps() orchestrators.SaveSettingsDeps {
	return orchestrators.SaveSettingsDeps{
		SettingsStore: stores.SettingsStore,
		Now:           timeNow,
	}
}

type settingsPage struct {
	Bank        settings.BankDetails
	Contact     settings.ContactDetails
	BankError   string
	ContactErr  string
	MediaOnline bool
}

func renderSettings(w http.ResponseWriter, r *http.Request, status int, page settingsPage) {
	page.MediaOnline = mediaHost.Configured()
	renderTemplateStatus(w, r, status, "admin_settings.html", map[string]any{
		"Title": "Settings",
		"Page":  page,
		"Flash": flashFrom(r),
	})
}

func currentSettingsPage(r *http.Request) settingsPage {
	s := projections.QueryGetSettings(r.Context(), stores.SettingsStore)
	return settingsPage{Bank: s.Bank, Contact: s.Contact}
}

// handleAdminSettings handles GET /admin/settings
func handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderSettings(w, r, http.StatusOK, currentSettingsPage(r))
}

// handleAdminSettingsBank handles POST /admin/settings/bank
func handleAdminSettingsBank(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := settings.BankDetails{
		AccountName:   r.FormValue("account_name"),
		AccountNumber: r.FormValue("account_number"),
		BankName:      r.FormValue("bank_name"),
		Branch:        r.FormValue("branch"),
		IFSCCode:      r.FormValue("ifsc_code"),
		UPIID:         r.FormValue("upi_id"),
		QRCodeURL:     r.FormValue("qr_code_url"),
	}
	if _, err := orchestrators.ExecuteSaveBankDetails(r.Context(), input, saveSettingsDeps()); err != nil {
		if isInputError(err) {
			page := currentSettingsPage(r)
			page.Bank, page.BankError = input, err.Error()
			renderSettings(w, r, http.StatusBadRequest, page)
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "bank_details_saved", settings.KeyBankDetails)
	redirectWithFlash(w, r, "/admin/settings", "updated")
}

// handleAdminSettingsBankQR handles POST /admin/settings/bank/qr (multipart "files")
func handleAdminSettingsBankQR(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	images, err := uploadImages(w, r, "", qrCodeFolder)
	if err == nil && len(images) != 1 {
		orchestrators.PurgeAssets(r.Context(), mediaHost, publicIDs(images))
		err = &upload.Error{Kind: upload.KindInvalidType, Message: "Please upload a single QR code image."}
	}
	if err != nil {
		status, msg := uploadErrorStatus(err)
		var ue *upload.Error
		if !errors.As(err, &ue) || ue.Kind == upload.KindUpstream {
			msg = "Upload failed. Please try again."
		}
		page := currentSettingsPage(r)
		page.BankError = msg
		renderSettings(w, r, status, page)
		return
	}

	bank := projections.QueryGetBankDetails(r.Context(), stores.SettingsStore)
	bank.QRCodeURL = images[0].URL
	if _, err := orchestrators.ExecuteSaveBankDetails(r.Context(), bank, saveSettingsDeps()); err != nil {
		orchestrators.PurgeAssets(r.Context(), mediaHost, publicIDs(images))
		internalError(w, err)
		return
	}
	logAdminAction(r, "bank_qr_uploaded", images[0].PublicID)
	redirectWithFlash(w, r, "/admin/settings", "uploaded")
}

func publicIDs(images []orchestrators.UploadedImage) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.PublicID)
	}
	return ids
}

// handleAdminSettingsContact handles POST /admin/settings/contact
func handleAdminSettingsContact(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := settings.ContactDetails{
		Address:           r.FormValue("address"),
		Phone:             r.FormValue("phone"),
		Email:             r.FormValue("email"),
		NotificationEmail: r.FormValue("notification_email"),
	}
	if _, err := orchestrators.ExecuteSaveContactDetails(r.Context(), input, saveSettingsDeps()); err != nil {
		if isInputError(err) {
			page := currentSettingsPage(r)
			page.Contact, page.ContactErr = input, err.Error()
			renderSettings(w, r, http.StatusBadRequest, page)
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "contact_details_saved", settings.KeyContactDetails)
	redirectWithFlash(w, r, "/admin/settings", "updated")
}
