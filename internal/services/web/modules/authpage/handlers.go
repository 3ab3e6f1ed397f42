package authpage

import (
	"net/http"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	"github.com/studydesk/studydesk/internal/services/web/platform/httpx"
	webi18n "github.com/studydesk/studydesk/internal/services/web/platform/i18n"
	"github.com/studydesk/studydesk/internal/services/web/platform/pagerender"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	"github.com/studydesk/studydesk/internal/services/web/platform/sessioncookie"
	"github.com/studydesk/studydesk/internal/services/web/platform/weberror"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

type handlers struct {
	svc    service
	policy requestmeta.SchemePolicy
}

func newHandlers(svc service, policy requestmeta.SchemePolicy) handlers {
	return handlers{svc: svc, policy: policy}
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.Handle(routepath.AuthPage, httpx.Chain(
		http.HandlerFunc(h.handlePage),
		httpx.RequireMethod(http.MethodGet),
	))
	mux.Handle(routepath.AuthSubmit, httpx.Chain(
		http.HandlerFunc(h.handleSubmit),
		httpx.RequireMethod(http.MethodPost),
	))
}

// handlePage renders the auth form. Signed-in visitors go straight to the app.
func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	if token, ok := sessioncookie.Read(r); ok && h.svc.signedIn(httpx.RequestContext(r), token) {
		httpx.WriteRedirect(w, r, routepath.AppRoot)
		return
	}
	mode := webtemplates.AuthModeSignIn
	if r.URL.Query().Get("mode") == string(webtemplates.AuthModeSignUp) {
		mode = webtemplates.AuthModeSignUp
	}
	h.renderPage(w, r, pageState{Mode: mode})
}

// handleSubmit drives one auth form post. Mutations require same-origin proof.
func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, h.policy) {
		weberror.WriteError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin form rejected"))
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "malformed form"))
		return
	}
	sub := submission{
		Mode:     webtemplates.AuthMode(r.PostFormValue("mode")),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		FullName: r.PostFormValue("full_name"),
	}
	result := h.svc.submit(httpx.RequestContext(r), sub)
	if result.Granted {
		sessioncookie.Write(w, r, result.Grant.Token, h.policy)
	}
	h.renderPage(w, r, pageState{
		Mode:            sub.Mode,
		Email:           sub.Email,
		FullName:        sub.FullName,
		ErrorMessage:    result.ErrorMessage,
		SuccessMessage:  result.SuccessMessage,
		RedirectDelayMS: result.RedirectDelayMS,
	})
}

type pageState struct {
	Mode            webtemplates.AuthMode
	Email           string
	FullName        string
	ErrorMessage    string
	SuccessMessage  string
	RedirectDelayMS int
}

func (h handlers) renderPage(w http.ResponseWriter, r *http.Request, state pageState) {
	if state.Mode != webtemplates.AuthModeSignUp {
		state.Mode = webtemplates.AuthModeSignIn
	}
	// The toggle link is a plain navigation; the fresh document resets any
	// visible message and flips the full-name requirement.
	toggleHref := routepath.AuthPage + "?mode=" + string(webtemplates.AuthModeSignUp)
	if state.Mode == webtemplates.AuthModeSignUp {
		toggleHref = routepath.AuthPage
	}
	loc, lang := webi18n.ResolveLocalizer(r)
	_ = pagerender.WritePage(w, r, http.StatusOK, webtemplates.AuthPage(webtemplates.AuthPageData{
		Mode:             state.Mode,
		Email:            state.Email,
		FullName:         state.FullName,
		ErrorMessage:     state.ErrorMessage,
		SuccessMessage:   state.SuccessMessage,
		RedirectDelayMS:  state.RedirectDelayMS,
		ErrorAutoClearMS: errorAutoClearMS,
		SubmitPath:       routepath.AuthSubmit,
		ToggleHref:       toggleHref,
		AppRootPath:      routepath.AppRoot,
		Lang:             lang,
		Loc:              loc,
	}))
}
