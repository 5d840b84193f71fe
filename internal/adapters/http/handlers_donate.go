package web

import (
	"errors"
	"net/http"
	"strings"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/donation"
)

type donateFormData struct {
	Name, Email, Phone, Amount, Type, Message string
	Error                                     string
	Recorded                                  *donation.Donation
}

// handleDonate handles GET /donate?type= and POST /donate
func handleDonate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		form := donateFormData{Type: r.URL.Query().Get("type")}
		if !donation.IsValidType(form.Type) {
			form.Type = donation.TypeGeneral
		}
		renderDonate(w, r, http.StatusOK, form)
	case http.MethodPost:
		handleDonatePost(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderDonate(w http.ResponseWriter, r *http.Request, status int, form donateFormData) {
	renderTemplateStatus(w, r, status, "donate.html", map[string]any{
		"Title":   "Donate",
		"Form":    form,
		"Bank":    projections.QueryGetBankDetails(r.Context(), stores.SettingsStore),
		"Presets": donation.PresetAmountsRupees,
	})
}

func isDonationInputError(err error) bool {
	for _, target := range []error{
		donation.ErrMissingDonor, donation.ErrInvalidEmail, donation.ErrInvalidAmount,
		donation.ErrInvalidType, donation.ErrFieldTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// donationAmount prefers a typed amount over a preset choice.
func donationAmount(r *http.Request) string {
	if custom := strings.TrimSpace(r.FormValue("amount_custom")); custom != "" {
		return custom
	}
	return r.FormValue("amount")
}

func handleDonatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := donateFormData{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Amount:  donationAmount(r),
		Type:    r.FormValue("type"),
		Message: r.FormValue("message"),
	}

	d, err := orchestrators.ExecuteRecordDonation(r.Context(), orchestrators.RecordDonationInput{
		DonorName:  form.Name,
		DonorEmail: form.Email,
		DonorPhone: form.Phone,
		Amount:     form.Amount,
		Type:       form.Type,
		Message:    form.Message,
	}, orchestrators.RecordDonationDeps{
		DonationStore: stores.DonationStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		if isDonationInputError(err) {
			form.Error = err.Error()
			renderDonate(w, r, http.StatusBadRequest, form)
			return
		}
		internalError(w, err)
		return
	}
	renderDonate(w, r, http.StatusOK, donateFormData{Type: d.Type, Recorded: &d})
}
