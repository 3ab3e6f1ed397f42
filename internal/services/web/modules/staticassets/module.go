// Package staticassets serves the embedded stylesheet and script assets.
package staticassets

import (
	"net/http"
	"strings"

	"github.com/studydesk/studydesk/internal/services/web/module"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
	"github.com/studydesk/studydesk/internal/services/web/static"
)

// Module provides the shared static asset routes.
type Module struct{}

// New returns a staticassets module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "staticassets" }

// Mount wires the embedded asset file server.
func (Module) Mount() (module.Mount, error) {
	handler := http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS))
	return module.Mount{
		Patterns: []string{routepath.StaticPrefix},
		Handler:  withStaticMime(handler),
	}, nil
}

// withStaticMime attaches explicit content-type hints for known static assets.
func withStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css")
		case strings.HasSuffix(path, ".js"):
			w.Header().Set("Content-Type", "application/javascript")
		case strings.HasSuffix(path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
		}
		next.ServeHTTP(w, r)
	})
}
