package registration

import (
	"context"
	"log/slog"
)

// Level is the severity of a notice, mirroring the usual toast variants.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notice is a message addressed to the user. Key and Args allow the
// receiver to localize it; Message is the English rendering.
type Notice struct {
	Message string
	Level   Level
	Key     string
	Args    []any
}

// Notifier delivers notices. How they reach the user (flash message, log
// line, toast) is up to the implementation.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notice)

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notice) {
	f(ctx, n)
}

// Notifiers fans a notice out to every notifier in order.
type Notifiers []Notifier

// Notify implements Notifier.
func (ns Notifiers) Notify(ctx context.Context, n Notice) {
	for _, notifier := range ns {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(ctx context.Context, n Notice) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	switch n.Level {
	case LevelError:
		level = slog.LevelError
	case LevelWarning:
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "Registration notice", "message", n.Message, "level", string(n.Level))
}

type notifierKey struct{}

// ContextWithNotifier returns a context carrying a request-scoped notifier. A form
// submitted with that context notifies it instead of the form's own notifier.
func ContextWithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// NotifierFromContext returns the notifier stored by ContextWithNotifier, or nil.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok {
		return n
	}
	return nil
}

func successNotice() Notice {
	return Notice{Message: msgRegisterSuccess, Level: LevelSuccess, Key: msgRegisterSuccess}
}
