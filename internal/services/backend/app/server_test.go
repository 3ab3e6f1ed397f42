package app

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewServerRequiresTokenSecret(t *testing.T) {
	t.Parallel()

	_, err := NewServer(Config{
		HTTPAddr: "localhost:0",
		DBPath:   filepath.Join(t.TempDir(), "backend.db"),
	})
	if err == nil {
		t.Fatal("NewServer() error = nil, want error for missing token secret")
	}
}

func TestNewServerOpensStore(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:    "localhost:0",
		DBPath:      filepath.Join(t.TempDir(), "backend.db"),
		TokenSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestSeedDemoProvisionsAccountAndPlans(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr:                 "localhost:0",
		DBPath:                   filepath.Join(t.TempDir(), "backend.db"),
		TokenSecret:              "test-secret",
		RequireEmailConfirmation: true,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer func() { _ = server.Close() }()

	ctx := context.Background()
	if err := server.SeedDemo(ctx); err != nil {
		t.Fatalf("SeedDemo() error = %v", err)
	}
	// Seeding again is a no-op, not a duplicate.
	if err := server.SeedDemo(ctx); err != nil {
		t.Fatalf("second SeedDemo() error = %v", err)
	}

	grant, err := server.svc.SignIn(ctx, demoEmail, demoPassword)
	if err != nil {
		t.Fatalf("demo login: %v", err)
	}
	plans, err := server.svc.StudyPlans(ctx, grant.User.ID)
	if err != nil {
		t.Fatalf("list demo plans: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("demo plans = %d, want 3", len(plans))
	}
}
