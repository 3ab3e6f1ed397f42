// Package dashboard serves the authenticated app shell.
package dashboard

import (
	"net/http"
	"time"

	"github.com/studydesk/studydesk/internal/services/web/module"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
)

const defaultWatchInterval = 15 * time.Second

// Option configures a dashboard module.
type Option func(*Module)

// WithGateway sets the dashboard gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// WithWatchInterval sets the session watch poll interval.
func WithWatchInterval(interval time.Duration) Option {
	return func(m *Module) {
		if interval > 0 {
			m.watchInterval = interval
		}
	}
}

// Module provides authenticated dashboard routes.
type Module struct {
	gateway       Gateway
	policy        requestmeta.SchemePolicy
	watchInterval time.Duration
}

// New returns a dashboard module configured by the given options.
// Without options the module starts in degraded mode.
func New(opts ...Option) Module {
	m := Module{watchInterval: defaultWatchInterval}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires the app shell, logout, plans fragment, and session watch handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway)
	h := newHandlers(svc, m.policy, m.watchInterval)
	registerRoutes(mux, h)
	return module.Mount{
		Patterns: []string{
			routepath.AppRoot,
			routepath.Logout,
			routepath.PlansRecent,
			routepath.SessionEvents,
		},
		Handler: mux,
	}, nil
}
