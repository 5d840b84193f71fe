package web

import (
	"net/http"

	"trust/internal/adapters/http/middleware"
	"trust/internal/domain/account"
)

// staff gates content administration to signed-in admins and editors.
func staff(h http.HandlerFunc) http.Handler {
	return middleware.RequireRole(account.RoleAdmin, account.RoleEditor)(h)
}

// adminOnly gates site settings to admins.
func adminOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireRole(account.RoleAdmin)(h)
}

func registerRoutes(mux *http.ServeMux) {
	// Public pages
	mux.HandleFunc("/{$}", handleHome)
	mux.HandleFunc("/about", handleAbout)
	mux.HandleFunc("/activities", handleActivities)
	mux.HandleFunc("/activities/{slug}", handleActivityEvents)
	mux.HandleFunc("/activities/events/{id}/photos", handleEventPhotos)
	mux.HandleFunc("/gallery", handleGallery)
	mux.HandleFunc("/news", handleNews)
	mux.HandleFunc("/contact", handleContact)
	mux.HandleFunc("/donate", handleDonate)
	mux.HandleFunc("/robots.txt", handleRobots)
	mux.HandleFunc("/sitemap.xml", handleSitemap)

	// Auth
	mux.HandleFunc(middleware.LoginPath, handleLogin)
	mux.HandleFunc("/auth/logout", handleLogout)

	// Admin
	mux.Handle("/admin", staff(handleAdminDashboard))
	mux.Handle("/admin/events", staff(handleAdminEvents))
	mux.Handle("/admin/events/new", staff(handleAdminEventNew))
	mux.Handle("/admin/events/{id}", staff(handleAdminEventEdit))
	mux.Handle("/admin/events/{id}/delete", staff(handleAdminEventDelete))
	mux.Handle("/admin/events/{id}/photos", staff(handleAdminEventPhotos))
	mux.Handle("/admin/events/{id}/photos/upload", staff(handleAdminEventPhotosUpload))
	mux.Handle("/admin/events/{id}/photos/{photoID}/delete", staff(handleAdminEventPhotoDelete))
	mux.Handle("/admin/gallery", staff(handleAdminGallery))
	mux.Handle("/admin/gallery/create", staff(handleAdminGalleryCreate))
	mux.Handle("/admin/gallery/upload", staff(handleAdminGalleryUpload))
	mux.Handle("/admin/gallery/{id}/edit", staff(handleAdminGalleryEdit))
	mux.Handle("/admin/gallery/{id}/delete", staff(handleAdminGalleryDelete))
	mux.Handle("/admin/news", staff(handleAdminNews))
	mux.Handle("/admin/news/create", staff(handleAdminNewsCreate))
	mux.Handle("/admin/news/{id}", staff(handleAdminNewsEdit))
	mux.Handle("/admin/news/{id}/publish", staff(handleAdminNewsPublish))
	mux.Handle("/admin/news/{id}/delete", staff(handleAdminNewsDelete))
	mux.Handle("/admin/contacts", staff(handleAdminContacts))
	mux.Handle("/admin/contacts/{id}/delete", staff(handleAdminContactDelete))
	mux.Handle("/admin/donations", staff(handleAdminDonations))
	mux.Handle("/admin/settings", adminOnly(handleAdminSettings))
	mux.Handle("/admin/settings/bank", adminOnly(handleAdminSettingsBank))
	mux.Handle("/admin/settings/bank/qr", adminOnly(handleAdminSettingsBankQR))
	mux.Handle("/admin/settings/contact", adminOnly(handleAdminSettingsContact))
	mux.Handle("/admin/accounts", adminOnly(handleAdminAccounts))
	mux.Handle("/admin/accounts/{id}/delete", adminOnly(handleAdminAccountDelete))
	mux.Handle("/admin/accounts/{id}/unlock", adminOnly(handleAdminAccountUnlock))
	mux.Handle("/admin/password", staff(handleAdminPassword))

	// API
	mux.HandleFunc("/api/upload", handleAPIUpload)
	mux.HandleFunc("/api/contact", handleAPIContact)

	mux.HandleFunc("/", handleNotFound)
}
