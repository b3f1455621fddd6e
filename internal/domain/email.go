package domain

import "context"

// Email is a single outgoing HTML message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// EmailSender delivers emails. Implementations range from a logger for
// development to a transactional mail API.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
