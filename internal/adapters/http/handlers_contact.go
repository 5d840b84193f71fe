package web

import (
	"errors"
	"log/slog"
	"net/http"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/contact"
)

// errWrongCaptcha is shown when the arithmetic challenge was answered wrongly or has expired.
var errWrongCaptcha = errors.New("Incorrect answer. Please try again.")

func submitContactDeps() orchestrators.SubmitContactDeps {
	return orchestrators.SubmitContactDeps{
		ContactStore:  stores.ContactStore,
		SettingsStore: stores.SettingsStore,
		Sender:        emailSender,
		From:          emailFromAddress,
		GenerateID:    generateID,
		Now:           timeNow,
	}
}

// contactErrorMessage maps a submission error to what the visitor sees.
// Validation messages are shown verbatim; anything else is generic.
func contactErrorMessage(err error) (string, int) {
	switch {
	case errors.Is(err, contact.ErrMissingRequired),
		errors.Is(err, contact.ErrInvalidEmail),
		errors.Is(err, contact.ErrFieldTooLong):
		return err.Error(), http.StatusBadRequest
	default:
		return orchestrators.ErrContactNotSaved.Error(), http.StatusInternalServerError
	}
}

// handleContact handles GET /contact and POST /contact
func handleContact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderContactForm(w, r, http.StatusOK, contactFormData{})
	case http.MethodPost:
		handleContactPost(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type contactFormData struct {
	Name, Email, Phone, Message string
	Error                       string
	Success                     string
}

func renderContactForm(w http.ResponseWriter, r *http.Request, status int, form contactFormData) {
	question, token, err := issueCaptcha()
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "contact.html", map[string]any{
		"Title":           "Contact Us",
		"Form":            form,
		"CaptchaQuestion": question,
		"CaptchaToken":    token,
		"Contact":         projections.QueryGetContactDetails(r.Context(), stores.SettingsStore),
	})
}

func handleContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := contactFormData{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	if !verifyCaptcha(r.FormValue("captcha_token"), r.FormValue("captcha_answer")) {
		slog.Info("contact_event", "event", "captcha_failed")
		form.Error = errWrongCaptcha.Error()
		renderContactForm(w, r, http.StatusBadRequest, form)
		return
	}

	_, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}, submitContactDeps())
	if err != nil {
		msg, status := contactErrorMessage(err)
		form.Error = msg
		renderContactForm(w, r, status, form)
		return
	}
	renderContactForm(w, r, http.StatusOK, contactFormData{Success: orchestrators.ContactSuccessMessage})
}
