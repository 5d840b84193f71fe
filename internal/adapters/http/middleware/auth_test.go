package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestMemorySessionStore_Lifecycle tests create, get, expiry and delete.
func TestMemorySessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ss := NewMemorySessionStore()
	ss.now = func() time.Time { return now }

	token, err := ss.Create(ctx, "acc-1", "admin@vasanthamtrust.com", "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
	sess, ok := ss.Get(ctx, token)
	if !ok || sess.AccountID != "acc-1" || sess.Role != "admin" {
		t.Fatalf("Get = %+v, %v", sess, ok)
	}

	now = now.Add(SessionTTL + time.Minute)
	if _, ok := ss.Get(ctx, token); ok {
		t.Error("expired session still returned")
	}
	if len(ss.sessions) != 0 {
		t.Errorf("expired session not removed")
	}

	token2, _ := ss.Create(ctx, "acc-2", "e@x.org", "editor")
	if err := ss.Delete(ctx, token2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := ss.Get(ctx, token2); ok {
		t.Error("deleted session still returned")
	}

	keep, _ := ss.Create(ctx, "acc-1", "admin@vasanthamtrust.com", "admin")
	drop1, _ := ss.Create(ctx, "acc-3", "ed@x.org", "editor")
	drop2, _ := ss.Create(ctx, "acc-3", "ed@x.org", "editor")
	if err := ss.DeleteForAccount(ctx, "acc-3"); err != nil {
		t.Fatalf("DeleteForAccount: %v", err)
	}
	if _, ok := ss.Get(ctx, drop1); ok {
		t.Error("first acc-3 session survived")
	}
	if _, ok := ss.Get(ctx, drop2); ok {
		t.Error("second acc-3 session survived")
	}
	if _, ok := ss.Get(ctx, keep); !ok {
		t.Error("unrelated session removed")
	}
}

// TestAuth_SetsSessionInContext tests that a valid cookie populates the context.
func TestAuth_SetsSessionInContext(t *testing.T) {
	ss := NewMemorySessionStore()
	token, _ := ss.Create(context.Background(), "acc-1", "a@b.org", "admin")

	var got Session
	var found bool
	h := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !found || got.AccountID != "acc-1" {
		t.Fatalf("session = %+v, found = %v", got, found)
	}

	found = false
	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "bogus"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if found {
		t.Error("bogus token produced a session")
	}
}

// TestRequireAuth_RedirectsToLogin tests the admin gate.
func TestRequireAuth_RedirectsToLogin(t *testing.T) {
	h := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/admin/events", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != LoginPath {
		t.Errorf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}

	req := httptest.NewRequest("GET", "/admin/events", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a", Role: "editor"}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rr.Code)
	}
}

// TestRequireRole_Forbidden tests that editors cannot reach admin-only handlers.
func TestRequireRole_Forbidden(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/admin/settings", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a", Role: "editor"}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}
