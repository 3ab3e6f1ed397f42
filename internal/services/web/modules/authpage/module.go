// Package authpage serves the public sign-in and sign-up flow.
package authpage

import (
	"net/http"

	"github.com/studydesk/studydesk/internal/services/web/module"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
	"github.com/studydesk/studydesk/internal/services/web/routepath"
)

// Option configures an authpage module.
type Option func(*Module)

// WithGateway sets the identity gateway.
func WithGateway(g Gateway) Option {
	return func(m *Module) { m.gateway = g }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// Module provides the public auth page routes.
type Module struct {
	gateway Gateway
	policy  requestmeta.SchemePolicy
}

// New returns an authpage module configured by the given options.
// Without options the module starts in degraded mode.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "authpage" }

// Healthy reports whether the module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires the auth page and submit handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.gateway)
	h := newHandlers(svc, m.policy)
	registerRoutes(mux, h)
	return module.Mount{
		Patterns: []string{routepath.AuthPage, routepath.AuthPrefix},
		Handler:  mux,
	}, nil
}
