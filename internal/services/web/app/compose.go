package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/studydesk/studydesk/internal/services/web/module"
	"github.com/studydesk/studydesk/internal/services/web/platform/httpx"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	"github.com/studydesk/studydesk/internal/services/web/platform/sessioncookie"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups. Protected module
// routes redirect cookie-less visitors to the auth page and require
// same-origin proof on mutating cookie-session requests.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if err := mountModule(root, feature, seen, nil); err != nil {
			return nil, err
		}
	}

	wrap := wrapProtectedModule(input.RequestSchemePolicy)
	for _, feature := range input.ProtectedModules {
		if err := mountModule(root, feature, seen, wrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	if feature == nil {
		return fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if len(mount.Patterns) == 0 {
		return fmt.Errorf("mount module %q: at least one pattern is required", feature.ID())
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, pattern := range mount.Patterns {
		if err := validatePattern(pattern); err != nil {
			return fmt.Errorf("mount module %q has invalid pattern %q: %w", feature.ID(), pattern, err)
		}
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates pattern %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if strings.TrimSpace(pattern) != pattern {
		return fmt.Errorf("pattern must not include surrounding whitespace")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("pattern must begin with /")
	}
	return nil
}

func wrapProtectedModule(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	csrfWrap := requireCookieSessionSameOrigin(policy)
	return func(next http.Handler) http.Handler {
		return requireSessionCookie(csrfWrap(next))
	}
}

// requireSessionCookie sends cookie-less visitors to the auth page before any
// protected handler runs. Token validity is still checked by the handlers.
func requireSessionCookie(next http.Handler) http.Handler {
	if next == nil {
		return http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessioncookie.Read(r); !ok {
			httpx.WriteRedirect(w, r, routepath.AuthPage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
