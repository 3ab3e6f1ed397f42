// Package backend runs the backend service command.
package backend

import (
	"context"
	"flag"
	"fmt"

	"github.com/studydesk/studydesk/internal/platform/config"
	"github.com/studydesk/studydesk/internal/services/backend/app"
)

// ParseConfig loads env configuration and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (app.Config, error) {
	var cfg app.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return app.Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "session token signing secret")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "issued session lifetime")
	fs.BoolVar(&cfg.RequireEmailConfirmation, "require-email-confirmation", cfg.RequireEmailConfirmation, "lock unconfirmed accounts out of login")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "provision a demo account with sample study plans before serving")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}

	return cfg, nil
}

// Run starts the backend server.
func Run(ctx context.Context, cfg app.Config) error {
	server, err := app.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("init backend server: %w", err)
	}
	defer func() { _ = server.Close() }()

	if cfg.SeedDemo {
		if err := server.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve backend: %w", err)
	}
	return nil
}
