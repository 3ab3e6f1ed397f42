package backend

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("backend", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8091" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8091")
	}
	if cfg.DBPath != "studydesk-backend.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "studydesk-backend.db")
	}
	if cfg.SessionTTL != 168*time.Hour {
		t.Fatalf("SessionTTL = %v, want %v", cfg.SessionTTL, 168*time.Hour)
	}
	if cfg.RequireEmailConfirmation {
		t.Fatal("RequireEmailConfirmation = true, want false")
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("backend", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "localhost:9999",
		"-token-secret", "s3cret",
		"-require-email-confirmation",
		"-seed-demo",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:9999" {
		t.Fatalf("HTTPAddr = %q, want override", cfg.HTTPAddr)
	}
	if cfg.TokenSecret != "s3cret" {
		t.Fatalf("TokenSecret = %q, want override", cfg.TokenSecret)
	}
	if !cfg.RequireEmailConfirmation {
		t.Fatal("RequireEmailConfirmation = false, want true")
	}
	if !cfg.SeedDemo {
		t.Fatal("SeedDemo = false, want true")
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("STUDYDESK_BACKEND_HTTP_ADDR", "localhost:7001")

	fs := flag.NewFlagSet("backend", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:7001" {
		t.Fatalf("HTTPAddr = %q, want env value", cfg.HTTPAddr)
	}
}
