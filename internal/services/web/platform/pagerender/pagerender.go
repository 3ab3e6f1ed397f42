// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	flashnotice "github.com/studydesk/studydesk/internal/services/web/platform/flash"
	"github.com/studydesk/studydesk/internal/services/web/platform/httpx"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

// WritePage renders a component fully before writing, so render failures
// surface as a 500 instead of a truncated document.
func WritePage(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) error {
	if w == nil {
		return nil
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if component == nil {
		w.WriteHeader(statusCode)
		return nil
	}
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	return httpx.WriteHTML(w, statusCode, buf.String())
}

// ResolveToast consumes any pending flash notice into a render-ready toast.
func ResolveToast(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, policy requestmeta.SchemePolicy) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(webtemplates.T(loc, notice.Key))
	if message == "" {
		message = notice.Key
	}
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{Kind: string(notice.Kind), Message: message}
}
