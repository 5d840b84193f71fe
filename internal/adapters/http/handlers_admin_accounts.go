package web

import (
	"errors"
	"log/slog"
	"net/http"

	"trust/internal/adapters/http/middleware"
	accountStore "trust/internal/adapters/storage/account"
	"trust/internal/application/orchestrators"
	"trust/internal/domain/account"
)

// accountInputErrors are shown verbatim on the account forms.
var accountInputErrors = []error{
	account.ErrEmptyEmail, account.ErrInvalidEmail, account.ErrEmailTooLong, account.ErrInvalidRole,
	account.ErrEmptyPassword, account.ErrPasswordTooShort,
	orchestrators.ErrEmailAlreadyExists, orchestrators.ErrPasswordFieldsRequired,
	orchestrators.ErrCurrentPasswordWrong, orchestrators.ErrNewPasswordSame, orchestrators.ErrPasswordMismatch,
	orchestrators.ErrCannotDeleteSelf, orchestrators.ErrLastAdmin,
}

func isAccountInputError(err error) bool {
	for _, target := range accountInputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func renderAdminAccounts(w http.ResponseWriter, r *http.Request, status int, input orchestrators.CreateAccountInput, formErr string) {
	accounts, err := stores.AccountStore.List(r.Context(), accountStore.ListFilter{})
	if err != nil {
		internalError(w, err)
		return
	}
	if input.Role == "" {
		input.Role = account.RoleEditor
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	renderTemplateStatus(w, r, status, "admin_accounts.html", map[string]any{
		"Title":    "Accounts",
		"SelfID":   sess.AccountID,
		"Now":      timeNow(),
		"Accounts": accounts,
		"Input":    input,
		"Roles":    account.ValidRoles,
		"Error":    formErr,
		"Flash":    flashFrom(r),
	})
}

// handleAdminAccounts handles GET /admin/accounts and POST /admin/accounts
func handleAdminAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderAdminAccounts(w, r, http.StatusOK, orchestrators.CreateAccountInput{}, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := orchestrators.CreateAccountInput{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     r.FormValue("role"),
		}
		id, err := orchestrators.ExecuteCreateAccount(r.Context(), input, orchestrators.CreateAccountDeps{
			AccountStore: stores.AccountStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			if isAccountInputError(err) {
				input.Password = ""
				renderAdminAccounts(w, r, http.StatusBadRequest, input, err.Error())
				return
			}
			internalError(w, err)
			return
		}
		logAdminAction(r, "account_created", id)
		redirectWithFlash(w, r, "/admin/accounts", "created")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminAccountDelete handles POST /admin/accounts/{id}/delete
func handleAdminAccountDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := r.PathValue("id")
	err := orchestrators.ExecuteDeleteAccount(r.Context(), sess.AccountID, id, stores.AccountStore)
	switch {
	case err == nil:
	case isNotFound(err):
		// Already gone.
	case isAccountInputError(err):
		renderAdminAccounts(w, r, http.StatusBadRequest, orchestrators.CreateAccountInput{}, err.Error())
		return
	default:
		internalError(w, err)
		return
	}
	if err := sessions.DeleteForAccount(r.Context(), id); err != nil {
		slog.Error("session_revoke_failed", "account_id", id, "error", err)
	}
	logAdminAction(r, "account_deleted", id)
	redirectWithFlash(w, r, "/admin/accounts", "deleted")
}

// handleAdminAccountUnlock handles POST /admin/accounts/{id}/unlock
func handleAdminAccountUnlock(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	if err := orchestrators.ExecuteUnlockAccount(r.Context(), id, stores.AccountStore); err != nil {
		if isNotFound(err) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "account_unlocked", id)
	redirectWithFlash(w, r, "/admin/accounts", "unlocked")
}

// handleAdminPassword handles GET /admin/password and POST /admin/password
func handleAdminPassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderTemplate(w, r, "admin_password.html", map[string]any{
			"Title": "Change Password",
			"Flash": flashFrom(r),
		})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		sess, _ := middleware.GetSessionFromContext(r.Context())
		err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
			AccountID:       sess.AccountID,
			CurrentPassword: r.FormValue("current_password"),
			NewPassword:     r.FormValue("new_password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
		if err != nil {
			if isAccountInputError(err) {
				renderTemplateStatus(w, r, http.StatusBadRequest, "admin_password.html", map[string]any{
					"Title": "Change Password",
					"Error": err.Error(),
				})
				return
			}
			internalError(w, err)
			return
		}
		logAdminAction(r, "password_changed", sess.AccountID)
		redirectWithFlash(w, r, "/admin/password", "password")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
