package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
)

func TestReadMissingCookie(t *testing.T) {
	t.Parallel()

	if _, ok := Read(httptest.NewRequest("GET", "/", nil)); ok {
		t.Fatal("Read reported a cookie on a bare request")
	}
}

func TestReadTrimsAndRejectsEmpty(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: Name, Value: "  token-123  "})
	value, ok := Read(r)
	if !ok || value != "token-123" {
		t.Fatalf("Read = %q, %v", value, ok)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: Name, Value: "   "})
	if _, ok := Read(r); ok {
		t.Fatal("Read accepted a blank cookie value")
	}
}

func TestWriteSetsHardenedCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, httptest.NewRequest("POST", "http://studydesk.test/auth/submit", nil), "token-123", requestmeta.SchemePolicy{})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || cookie.Value != "token-123" {
		t.Fatalf("cookie = %q=%q", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("SameSite = %v, want Lax", cookie.SameSite)
	}
	if cookie.Secure {
		t.Fatal("plain HTTP request produced a Secure cookie")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Clear(rec, httptest.NewRequest("POST", "http://studydesk.test/logout", nil), requestmeta.SchemePolicy{})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("MaxAge = %d, want -1", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Fatalf("Value = %q, want empty", cookies[0].Value)
	}
}
