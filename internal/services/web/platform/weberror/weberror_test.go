package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
)

func TestShouldRenderErrorPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusNotFound, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tc := range tests {
		if got := ShouldRenderErrorPage(tc.status); got != tc.want {
			t.Fatalf("ShouldRenderErrorPage(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(nil, apperrors.E(apperrors.KindInvalidInput, "Password must be at least 6 characters long")); got != "Password must be at least 6 characters long" {
		t.Fatalf("PublicMessage = %q", got)
	}
	if got := PublicMessage(nil, errors.New("dial tcp: connection refused")); got != "Internal Server Error" {
		t.Fatalf("PublicMessage leaked internals: %q", got)
	}
	if got := PublicMessage(nil, nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q", got)
	}
}

func TestWriteErrorPlainText(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest("GET", "/", nil), apperrors.E(apperrors.KindUnauthorized, "sign in first"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "sign in first" {
		t.Fatalf("body = %q", got)
	}
}

func TestWriteErrorRendersPageForServerFailures(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest("GET", "/", nil), errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>500</h1>") {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatal("internal error leaked to client")
	}
}
