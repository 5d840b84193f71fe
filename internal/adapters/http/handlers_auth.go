package web

import (
	"log/slog"
	"net/http"

	"trust/internal/adapters/http/middleware"
	"trust/internal/application/orchestrators"
)

// handleLogin handles GET /auth/login and POST /auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"Title": "Admin Login"})
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
			Now:          timeNow,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplateStatus(w, r, http.StatusUnauthorized, "login.html", map[string]any{
				"Title": "Admin Login",
				"Email": input.Email,
				"Error": err.Error(),
			})
			return
		}

		token, err := sessions.Create(r.Context(), result.AccountID, result.Email, result.Role)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /auth/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		if err := sessions.Delete(r.Context(), token); err != nil {
			slog.Error("auth_event", "event", "logout_delete_failed", "error", err)
		}
	}
	middleware.ClearSessionCookie(w)
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "email", sess.Email)
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
