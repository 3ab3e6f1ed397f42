// Package app composes and runs the web server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/studydesk/studydesk/internal/services/web/integration/backendapi"
	module "github.com/studydesk/studydesk/internal/services/web/module"
	"github.com/studydesk/studydesk/internal/services/web/modules/authpage"
	"github.com/studydesk/studydesk/internal/services/web/modules/dashboard"
	"github.com/studydesk/studydesk/internal/services/web/modules/staticassets"
	"github.com/studydesk/studydesk/internal/services/web/platform/httpx"
	"github.com/studydesk/studydesk/internal/services/web/platform/requestmeta"
)

// Config holds the web server configuration.
type Config struct {
	HTTPAddr            string        `env:"STUDYDESK_WEB_HTTP_ADDR" envDefault:"localhost:8090"`
	BackendURL          string        `env:"STUDYDESK_WEB_BACKEND_URL" envDefault:"http://localhost:8091"`
	TrustForwardedProto bool          `env:"STUDYDESK_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
	SessionWatchEvery   time.Duration `env:"STUDYDESK_WEB_SESSION_WATCH_EVERY" envDefault:"15s"`
}

// Server is the web HTTP server.
type Server struct {
	httpServer *http.Server
	addr       string
}

// NewServer wires the backend client, modules, and middleware chain.
func NewServer(cfg Config) (*Server, error) {
	client, err := backendapi.NewClient(backendapi.Config{BaseURL: cfg.BackendURL})
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}

	handler, err := Compose(ComposeInput{
		PublicModules: []module.Module{
			staticassets.New(),
			authpage.New(
				authpage.WithGateway(authpage.NewHTTPGateway(client)),
				authpage.WithSchemePolicy(policy),
			),
		},
		ProtectedModules: []module.Module{
			dashboard.New(
				dashboard.WithGateway(dashboard.NewHTTPGateway(client)),
				dashboard.WithSchemePolicy(policy),
				dashboard.WithWatchInterval(cfg.SessionWatchEvery),
			),
		},
		RequestSchemePolicy: policy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	root := httpx.Chain(handler,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.Trace("studydesk-web"),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           root,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: cfg.HTTPAddr,
	}, nil
}

// ListenAndServe serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	log.Printf("web listening addr=%s", listener.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
