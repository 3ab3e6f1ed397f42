// Package main starts the StudyDesk backend service.
//
// This process owns user accounts, sessions, profiles, and study plans, and
// exposes them as a JSON API for the browser-facing web service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	backendcmd "github.com/studydesk/studydesk/internal/cmd/backend"
	platformotel "github.com/studydesk/studydesk/internal/platform/otel"
)

func main() {
	cfg, err := backendcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[BACKEND] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, "studydesk-backend")
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	if err := backendcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
