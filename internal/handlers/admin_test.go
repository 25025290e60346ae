package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"personal_diary/internal/models"
	"personal_diary/internal/service"
)

func TestAdminHome_ListsUsersWithStats(t *testing.T) {
	admin := &mockAdmin{users: []models.UserInfo{
		{ID: 7, Username: "alice", EntryCount: 3, PhotoCount: 5, JoinedAt: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Username: "bob", EntryCount: 0, PhotoCount: 0, JoinedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}}
	s := &service.Service{Sessions: newSessionMock(), AdminDirectory: admin}
	r := newTestRouter(s, nil)

	w := doGet(r, "/admin", testAdminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"alice", "3 entries, 5 photos", "bob", "/admin_login/7"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestImpersonate(t *testing.T) {
	t.Run("swaps the session to the target", func(t *testing.T) {
		sessions := newSessionMock()
		sessions.impersonateToken = "tok-as-alice"
		admin := &mockAdmin{impersonated: &models.User{ID: 7, Username: "alice"}}
		s := &service.Service{Sessions: sessions, AdminDirectory: admin}
		r := newTestRouter(s, nil)

		w := doGet(r, "/admin_login/7", testAdminToken)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
		if admin.lastTargetID != 7 {
			t.Fatalf("expected lookup of target 7, got %d", admin.lastTargetID)
		}
		if sessions.lastImpersonated == nil || sessions.lastImpersonated.ID != 7 {
			t.Fatalf("expected impersonated token for user 7, got %+v", sessions.lastImpersonated)
		}
		if v, ok := sessionCookieValue(w); !ok || v != "tok-as-alice" {
			t.Fatalf("expected replaced session cookie, got %q (present=%v)", v, ok)
		}
	})

	t.Run("unknown target silently returns to the directory", func(t *testing.T) {
		sessions := newSessionMock()
		admin := &mockAdmin{impersonateErr: service.ErrNotFound}
		s := &service.Service{Sessions: sessions, AdminDirectory: admin}
		r := newTestRouter(s, nil)

		w := doGet(r, "/admin_login/404", testAdminToken)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
		if _, ok := sessionCookieValue(w); ok {
			t.Fatal("no cookie should be set for an unknown target")
		}
	})

	t.Run("non-admin cannot impersonate", func(t *testing.T) {
		admin := &mockAdmin{}
		s := &service.Service{Sessions: newSessionMock(), AdminDirectory: admin}
		r := newTestRouter(s, nil)

		w := doGet(r, "/admin_login/7", testUserToken)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
		if admin.lastTargetID != 0 {
			t.Fatal("impersonation lookup must not run for non-admin")
		}
	})
}

// Full impersonation round trip at the router level: after the swap the
// session behaves exactly like the target user's and /admin is gone.
func TestImpersonation_IsOneWay(t *testing.T) {
	sessions := newSessionMock()
	sessions.impersonateToken = testUserToken // resolves to alice, non-admin
	admin := &mockAdmin{impersonated: &models.User{ID: 7, Username: "alice"}}
	entries := &mockEntries{getEntry: &models.Entry{ID: 11, UserID: 7, Date: "2024-06-01", Content: "alice's day"}}
	s := &service.Service{Sessions: sessions, AdminDirectory: admin, Entries: entries}
	r := newTestRouter(s, nil)

	w := doGet(r, "/admin_login/7", testAdminToken)
	token, ok := sessionCookieValue(w)
	if !ok {
		t.Fatal("expected impersonation to set a session cookie")
	}

	// The swapped session is scoped to alice...
	if ident := sessions.Parse(token); ident.UserID != 7 || ident.IsAdmin() {
		t.Fatalf("expected non-admin identity for user 7, got %+v", ident)
	}

	// ...entry operations run as alice...
	doGet(r, "/view/11", token)
	if entries.lastGetRequester != 7 {
		t.Fatalf("expected entry access scoped to 7, got %d", entries.lastGetRequester)
	}

	// ...and the admin surface redirects away.
	w = doGet(r, "/admin", token)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}
