package view

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/signup/internal/registration"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyInfo     = "info"
	flashKeyWarning  = "warning"
)

// FlashData is the set of one-shot messages rendered by the layout.
type FlashData struct {
	Success []string
	Error   []string
	Info    []string
	Warning []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success)+len(f.Error)+len(f.Info)+len(f.Warning) == 0
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.WarnContext(c.Request().Context(), "Flash session unavailable", "error", err)
		return
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.WarnContext(c.Request().Context(), "Failed to save flash session", "error", err)
	}
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFlash stores message under the key matching the notice level.
func SetFlash(c echo.Context, level registration.Level, message string) {
	switch level {
	case registration.LevelError:
		setFlash(c, flashKeyError, message)
	case registration.LevelInfo:
		setFlash(c, flashKeyInfo, message)
	case registration.LevelWarning:
		setFlash(c, flashKeyWarning, message)
	default:
		setFlash(c, flashKeySuccess, message)
	}
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() reads and clears in one step.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))
	data.Info = toStrings(sess.Flashes(flashKeyInfo))
	data.Warning = toStrings(sess.Flashes(flashKeyWarning))

	// Persist the clearing only when something was consumed.
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// FlashNotifier delivers registration notices as flash messages on the
// request's session, translated for the request's language.
type FlashNotifier struct {
	c         echo.Context
	localizer *registration.Localizer
}

var _ registration.Notifier = (*FlashNotifier)(nil)

// NewFlashNotifier creates a notifier bound to one request.
func NewFlashNotifier(c echo.Context, localizer *registration.Localizer) *FlashNotifier {
	return &FlashNotifier{c: c, localizer: localizer}
}

// Notify implements registration.Notifier.
func (n *FlashNotifier) Notify(ctx context.Context, notice registration.Notice) {
	msg := notice.Message
	if n.localizer != nil {
		msg = n.localizer.Notice(notice)
	}
	SetFlash(n.c, notice.Level, msg)
}
