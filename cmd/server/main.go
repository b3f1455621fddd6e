package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/logging"
	"github.com/nfrund/signup/internal/server"
)

func main() {
	logging.New()
	cfg := config.New()

	s, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	s.RegisterRoutes()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
