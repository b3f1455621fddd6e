package email

import (
	"context"
	"fmt"
	"html"

	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/pubsub"
)

// WelcomeSubscriber mails newly registered accounts.
type WelcomeSubscriber struct {
	sender  domain.EmailSender
	baseURL string
}

// NewWelcomeSubscriber creates a subscriber sending through sender. baseURL
// is linked from the mail body.
func NewWelcomeSubscriber(sender domain.EmailSender, baseURL string) *WelcomeSubscriber {
	return &WelcomeSubscriber{sender: sender, baseURL: baseURL}
}

// Start subscribes to account registrations until ctx is cancelled.
func (w *WelcomeSubscriber) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return pubsub.AccountRegisteredEvent.Subscribe(ctx, sub, w.handle)
}

func (w *WelcomeSubscriber) handle(ctx context.Context, ev pubsub.AccountRegistered) error {
	body := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your account has been created. You can sign in at <a href="%s">%s</a>.</p>`,
		html.EscapeString(ev.FullName), html.EscapeString(w.baseURL), html.EscapeString(w.baseURL),
	)
	err := w.sender.Send(ctx, domain.Email{
		To:       ev.Email,
		Subject:  "Welcome aboard",
		HTMLBody: body,
	})
	if err != nil {
		return fmt.Errorf("send welcome email to account %s: %w", ev.AccountID, err)
	}
	return nil
}
