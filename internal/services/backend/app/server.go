// Package app composes and runs the backend HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/studydesk/studydesk/internal/services/backend/api/httpapi"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/storage/sqlite"
)

// Config holds the backend server configuration.
type Config struct {
	HTTPAddr                 string        `env:"STUDYDESK_BACKEND_HTTP_ADDR" envDefault:"localhost:8091"`
	DBPath                   string        `env:"STUDYDESK_BACKEND_DB_PATH" envDefault:"studydesk-backend.db"`
	TokenSecret              string        `env:"STUDYDESK_BACKEND_TOKEN_SECRET"`
	SessionTTL               time.Duration `env:"STUDYDESK_BACKEND_SESSION_TTL" envDefault:"168h"`
	RequireEmailConfirmation bool          `env:"STUDYDESK_BACKEND_REQUIRE_EMAIL_CONFIRMATION" envDefault:"false"`
	SeedDemo                 bool          `env:"STUDYDESK_BACKEND_SEED_DEMO" envDefault:"false"`
}

// Server is the backend HTTP server with its owned resources.
type Server struct {
	httpServer *http.Server
	store      *sqlite.Store
	svc        *httpapi.Service
	addr       string
}

// NewServer opens storage and wires the API handler.
func NewServer(cfg Config) (*Server, error) {
	if cfg.TokenSecret == "" {
		return nil, errors.New("token secret is required")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	signer, err := session.NewSigner([]byte(cfg.TokenSecret))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	svc, err := httpapi.NewService(httpapi.Options{
		Store:                    store,
		Signer:                   signer,
		SessionTTL:               cfg.SessionTTL,
		RequireEmailConfirmation: cfg.RequireEmailConfirmation,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewHandler(svc),
			ReadHeaderTimeout: 5 * time.Second,
		},
		store: store,
		svc:   svc,
		addr:  cfg.HTTPAddr,
	}, nil
}

// Demo account provisioned by SeedDemo.
const (
	demoEmail    = "demo@studydesk.test"
	demoPassword = "study-demo"
	demoFullName = "Demo Student"
)

// SeedDemo provisions a confirmed demo account with sample study plans,
// going through the same service operations the API exposes. Seeding an
// already-provisioned database is a no-op.
func (s *Server) SeedDemo(ctx context.Context) error {
	grant, err := s.svc.SignUp(ctx, demoEmail, demoPassword, demoFullName)
	if err != nil {
		if errors.Is(err, httpapi.ErrUserRegistered) {
			return nil
		}
		return fmt.Errorf("seed demo user: %w", err)
	}
	// Seeded accounts skip the confirmation flow so they can log in even
	// when confirmation is required.
	if err := s.svc.ConfirmEmail(ctx, demoEmail); err != nil {
		return fmt.Errorf("confirm demo user: %w", err)
	}
	seeds := []struct{ title, subject string }{
		{"Calculus problem sets", "Math"},
		{"Cell biology notes", "Biology"},
		{"French revolution essay outline", "History"},
	}
	for _, seed := range seeds {
		if _, err := s.svc.CreatePlan(ctx, grant.User.ID, seed.title, seed.subject); err != nil {
			return fmt.Errorf("seed study plan: %w", err)
		}
	}
	log.Printf("seeded demo account email=%s plans=%d", demoEmail, len(seeds))
	return nil
}

// ListenAndServe serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	log.Printf("backend listening addr=%s", listener.Addr())

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

// Close releases the server's storage.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	return s.store.Close()
}
