// Package main starts the StudyDesk web service.
//
// This process renders the sign-in page and the authenticated dashboard
// shell, delegating identity and study-plan state to the backend service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/studydesk/studydesk/internal/cmd/web"
	platformotel "github.com/studydesk/studydesk/internal/platform/otel"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[WEB] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, "studydesk-web")
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	if err := webcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
