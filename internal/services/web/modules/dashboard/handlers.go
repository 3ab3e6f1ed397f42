package dashboard

import (
	"fmt"
	"log"
	"net/http"
	"time"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	"github.com/studydesk/studydesk/internal/services/web/platform/flash"
	"github.com/studydesk/studydesk/internal/services/web/platform/httpx"
	webi18n "github.com/studydesk/studydesk/internal/services/web/platform/i18n"
	"github.com/studydesk/studydesk/internal/services/web/platform/pagerender"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	"github.com/studydesk/studydesk/internal/services/web/platform/sessioncookie"
	"github.com/studydesk/studydesk/internal/services/web/platform/weberror"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

// darkModeCookie stores the dark mode preference as the string "true".
const darkModeCookie = "darkMode"

const signedOutEvent = "signed_out"

type handlers struct {
	svc           service
	policy        requestmeta.SchemePolicy
	watchInterval time.Duration
}

func newHandlers(svc service, policy requestmeta.SchemePolicy, watchInterval time.Duration) handlers {
	if watchInterval <= 0 {
		watchInterval = defaultWatchInterval
	}
	return handlers{svc: svc, policy: policy, watchInterval: watchInterval}
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.Handle(routepath.AppRoot, httpx.Chain(
		http.HandlerFunc(h.handleShell),
		httpx.RequireMethod(http.MethodGet),
	))
	mux.Handle(routepath.Logout, httpx.Chain(
		http.HandlerFunc(h.handleLogout),
		httpx.RequireMethod(http.MethodPost),
	))
	mux.Handle(routepath.PlansRecent, httpx.Chain(
		http.HandlerFunc(h.handleRecentPlans),
		httpx.RequireMethod(http.MethodGet),
	))
	mux.Handle(routepath.SessionEvents, httpx.Chain(
		http.HandlerFunc(h.handleSessionEvents),
		httpx.RequireMethod(http.MethodGet),
	))
}

// handleShell renders the app shell for the session behind the cookie. Any
// bootstrap failure sends the visitor back to the auth page.
func (h handlers) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routepath.AppRoot {
		weberror.WriteError(w, r, apperrors.E(apperrors.KindNotFound, ""))
		return
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AuthPage)
		return
	}
	viewer, err := h.svc.bootstrap(httpx.RequestContext(r), token)
	if err != nil {
		log.Printf("shell bootstrap: %v", err)
		sessioncookie.Clear(w, r, h.policy)
		httpx.WriteRedirect(w, r, routepath.AuthPage)
		return
	}
	loc, lang := webi18n.ResolveLocalizer(r)
	toast := pagerender.ResolveToast(w, r, loc, h.policy)
	_ = pagerender.WritePage(w, r, http.StatusOK, webtemplates.AppLayout(webtemplates.AppPageData{
		Viewer:         viewer,
		DarkMode:       darkModeEnabled(r),
		Toast:          toast,
		LogoutPath:     routepath.Logout,
		PlansPath:      routepath.PlansRecent,
		EventsPath:     routepath.SessionEvents,
		AuthPagePath:   routepath.AuthPage,
		DarkModeCookie: darkModeCookie,
		Lang:           lang,
		Loc:            loc,
	}))
}

// handleLogout revokes the session. Revocation failure keeps the session and
// surfaces a blocking notice on the next shell render.
func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, h.policy) {
		weberror.WriteError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin form rejected"))
		return
	}
	token, ok := sessioncookie.Read(r)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.AuthPage)
		return
	}
	if err := h.svc.signOut(httpx.RequestContext(r), token); err != nil {
		log.Printf("logout: %v", err)
		flash.Write(w, r, flash.NoticeError("Failed to log out. Please try again."), h.policy)
		httpx.WriteRedirect(w, r, routepath.AppRoot)
		return
	}
	sessioncookie.Clear(w, r, h.policy)
	httpx.WriteRedirect(w, r, routepath.AuthPage)
}

// handleRecentPlans serves the deferred plans fragment. Fetch failures are
// logged and degrade to the empty state, never blocking the shell.
func (h handlers) handleRecentPlans(w http.ResponseWriter, r *http.Request) {
	token, ok := sessioncookie.Read(r)
	if !ok {
		httpx.WriteError(w, apperrors.E(apperrors.KindUnauthorized, "session required"))
		return
	}
	loc, _ := webi18n.ResolveLocalizer(r)
	plans, err := h.svc.recentPlans(httpx.RequestContext(r), token)
	if err != nil {
		log.Printf("recent plans: %v", err)
		plans = nil
	}
	_ = pagerender.WritePage(w, r, http.StatusOK, webtemplates.PlansFragment(plans, loc))
}

// handleSessionEvents streams session-state changes over SSE. When the
// session stops resolving, one signed_out event is sent and the stream ends.
func (h handlers) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	token, ok := sessioncookie.Read(r)
	if !ok {
		httpx.WriteError(w, apperrors.E(apperrors.KindUnauthorized, "session required"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := httpx.RequestContext(r)
	ticker := time.NewTicker(h.watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			live, definitive := h.svc.sessionLive(ctx, token)
			if live {
				// Comment line keeps intermediaries from closing the stream.
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
				continue
			}
			if !definitive {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", signedOutEvent)
			flusher.Flush()
			return
		}
	}
}

func darkModeEnabled(r *http.Request) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(darkModeCookie)
	return err == nil && cookie != nil && cookie.Value == "true"
}
