package web

import (
	"net/http"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
)

func newsDeps() orchestrators.NewsDeps {
	return orchestrators.NewsDeps{
		NewsStore:  stores.NewsStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

func newsInputFromForm(r *http.Request) orchestrators.NewsInput {
	return orchestrators.NewsInput{
		Title:     r.FormValue("title"),
		Excerpt:   r.FormValue("excerpt"),
		Body:      r.FormValue("body"),
		Published: r.FormValue("published") == "on" || r.FormValue("published") == "true",
	}
}

func renderNewsForm(w http.ResponseWriter, r *http.Request, status int, id string, input orchestrators.NewsInput, formErr string) {
	title := "New Post"
	if id != "" {
		title = "Edit Post"
	}
	renderTemplateStatus(w, r, status, "admin_news_form.html", map[string]any{
		"Title":  title,
		"PostID": id,
		"Input":  input,
		"Error":  formErr,
	})
}

// handleAdminNews handles GET /admin/news
func handleAdminNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	posts, err := projections.QueryGetAllNews(r.Context(), stores.NewsStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_news.html", map[string]any{
		"Title": "News",
		"Posts": posts,
		"Flash": flashFrom(r),
	})
}

// handleAdminNewsCreate handles GET and POST /admin/news/create
func handleAdminNewsCreate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderNewsForm(w, r, http.StatusOK, "", orchestrators.NewsInput{}, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := newsInputFromForm(r)
		p, err := orchestrators.ExecuteCreateNews(r.Context(), input, newsDeps())
		if err != nil {
			if isInputError(err) {
				renderNewsForm(w, r, http.StatusBadRequest, "", input, err.Error())
				return
			}
			internalError(w, err)
			return
		}
		logAdminAction(r, "news_created", p.ID)
		redirectWithFlash(w, r, "/admin/news", "created")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminNewsEdit handles GET and POST /admin/news/{id}
func handleAdminNewsEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		p, err := stores.NewsStore.GetByID(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				renderNotFound(w, r)
				return
			}
			internalError(w, err)
			return
		}
		renderNewsForm(w, r, http.StatusOK, id, orchestrators.NewsInput{
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Body:      p.Body,
			Published: p.Published,
		}, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := newsInputFromForm(r)
		if _, err := orchestrators.ExecuteUpdateNews(r.Context(), id, input, newsDeps()); err != nil {
			switch {
			case isNotFound(err):
				renderNotFound(w, r)
			case isInputError(err):
				renderNewsForm(w, r, http.StatusBadRequest, id, input, err.Error())
			default:
				internalError(w, err)
			}
			return
		}
		logAdminAction(r, "news_updated", id)
		redirectWithFlash(w, r, "/admin/news", "updated")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminNewsPublish handles POST /admin/news/{id}/publish with published=true|false
func handleAdminNewsPublish(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	published := r.FormValue("published") == "true"
	if _, err := orchestrators.ExecuteSetNewsPublished(r.Context(), id, published, newsDeps()); err != nil {
		if isNotFound(err) {
			renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "news_publish_toggled", id)
	redirectWithFlash(w, r, "/admin/news", "published")
}

// handleAdminNewsDelete handles POST /admin/news/{id}/delete
func handleAdminNewsDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	if err := orchestrators.ExecuteDeleteNews(r.Context(), id, newsDeps()); err != nil && !isNotFound(err) {
		internalError(w, err)
		return
	}
	logAdminAction(r, "news_deleted", id)
	redirectWithFlash(w, r, "/admin/news", "deleted")
}
