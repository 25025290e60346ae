package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"personal_diary/internal/models"
	"personal_diary/internal/service"
)

const (
	testUserToken  = "tok-user"
	testAdminToken = "tok-admin"
)

// testIdentities is the token table the session mock resolves against.
func testIdentities() map[string]service.Identity {
	return map[string]service.Identity{
		testUserToken:  {UserID: 7, Username: "alice", Role: service.RoleUser},
		testAdminToken: {UserID: 1, Username: "admin", Role: service.RoleAdmin},
	}
}

func newSessionMock() *mockSessions {
	return &mockSessions{
		issueToken:       testUserToken,
		impersonateToken: testUserToken,
		identities:       testIdentities(),
	}
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookieValue(w *httptest.ResponseRecorder) (string, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c.Value, true
		}
	}
	return "", false
}

func TestHome_RoutesByRole(t *testing.T) {
	s := &service.Service{Sessions: newSessionMock(), Entries: &mockEntries{}}
	r := newTestRouter(s, nil)

	t.Run("anonymous gets the login page", func(t *testing.T) {
		w := doGet(r, "/", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Personal Diary") {
			t.Fatalf("expected login page, got: %s", w.Body.String()[:200])
		}
	})

	t.Run("user redirects to entries", func(t *testing.T) {
		w := doGet(r, "/", testUserToken)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/entries" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("admin redirects to directory", func(t *testing.T) {
		w := doGet(r, "/", testAdminToken)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
	})
}

func TestSignUp(t *testing.T) {
	t.Run("success prompts login", func(t *testing.T) {
		auth := &mockAuth{signUpID: 42}
		s := &service.Service{Authorization: auth, Sessions: newSessionMock()}
		r := newTestRouter(s, nil)

		w := doForm(r, "/signup", "", url.Values{"username": {"alice"}, "password": {"s3cr3t"}})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Account created") {
			t.Fatal("expected success message")
		}
		if auth.lastSignUpUsername != "alice" {
			t.Fatalf("expected signup for alice, got %q", auth.lastSignUpUsername)
		}
	})

	validationCases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"short password", service.ErrPasswordTooShort, "at least 4"},
		{"taken username", service.ErrUsernameTaken, "already exists"},
		{"missing fields", service.ErrMissingFields, "required"},
	}
	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Authorization: &mockAuth{signUpErr: tc.err}, Sessions: newSessionMock()}
			r := newTestRouter(s, nil)

			w := doForm(r, "/signup", "", url.Values{"username": {"alice"}, "password": {"x"}})
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMsg) {
				t.Fatalf("expected message containing %q", tc.wantMsg)
			}
		})
	}
}

func TestLogIn(t *testing.T) {
	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		sessions := newSessionMock()
		auth := &mockAuth{loginUser: &models.User{ID: 7, Username: "alice"}}
		s := &service.Service{Authorization: auth, Sessions: sessions}
		r := newTestRouter(s, nil)

		w := doForm(r, "/login", "", url.Values{"username": {"alice"}, "password": {"s3cr3t"}})
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
		}
		if v, ok := sessionCookieValue(w); !ok || v != testUserToken {
			t.Fatalf("expected session cookie %q, got %q (present=%v)", testUserToken, v, ok)
		}
		if sessions.lastIssued == nil || sessions.lastIssued.ID != 7 {
			t.Fatalf("expected token issued for user 7, got %+v", sessions.lastIssued)
		}
	})

	t.Run("bad credentials re-render login", func(t *testing.T) {
		s := &service.Service{
			Authorization: &mockAuth{loginErr: service.ErrInvalidCredentials},
			Sessions:      newSessionMock(),
		}
		r := newTestRouter(s, nil)

		w := doForm(r, "/login", "", url.Values{"username": {"alice"}, "password": {"wrong"}})
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid username or password") {
			t.Fatal("expected invalid-credentials message")
		}
		if _, ok := sessionCookieValue(w); ok {
			t.Fatal("no session cookie should be set on failed login")
		}
	})
}

func TestLogOut_ClearsSession(t *testing.T) {
	s := &service.Service{Sessions: newSessionMock()}
	r := newTestRouter(s, nil)

	w := doGet(r, "/logout", testUserToken)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the session cookie to be expired")
	}
}
