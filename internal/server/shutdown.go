package server

import (
	"context"
	"log/slog"
)

// Shutdown stops accepting requests, waits for in-flight ones and releases
// the event bus and the account store.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down server")
	err := s.E.Shutdown(ctx)
	s.close()
	return err
}

func (s *Server) close() {
	s.cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
