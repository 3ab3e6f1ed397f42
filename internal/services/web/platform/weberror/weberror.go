// Package weberror renders shared error responses for web modules.
package weberror

import (
	stderrors "errors"
	"net/http"
	"strings"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	webi18n "github.com/studydesk/studydesk/internal/services/web/platform/i18n"
	"github.com/studydesk/studydesk/internal/services/web/platform/pagerender"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status should use the full error-page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe error message without leaking internals.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	var appErr apperrors.Error
	if stderrors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
		return webtemplates.T(loc, appErr.Message)
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteError writes a module-safe error response: a full error page for
// not-found and server failures, plain text otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	loc, lang := webi18n.ResolveLocalizer(r)
	if ShouldRenderErrorPage(statusCode) {
		_ = pagerender.WritePage(w, r, statusCode, webtemplates.ErrorPage(statusCode, lang, loc))
		return
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}
