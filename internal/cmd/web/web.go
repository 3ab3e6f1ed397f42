// Package web runs the web service command.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/studydesk/studydesk/internal/platform/config"
	"github.com/studydesk/studydesk/internal/services/web/app"
)

// ParseConfig loads env configuration and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (app.Config, error) {
	var cfg app.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return app.Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "backend API base URL")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "trust X-Forwarded-Proto from a fronting proxy")
	fs.DurationVar(&cfg.SessionWatchEvery, "session-watch-every", cfg.SessionWatchEvery, "session watch poll interval")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}

	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg app.Config) error {
	server, err := app.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
