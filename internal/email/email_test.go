package email

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConfigProvider overrides only the getters the factory reads.
type mockConfigProvider struct {
	config.Provider
	provider, sender, apiKey string
}

func (m *mockConfigProvider) GetEmailProvider() string { return m.provider }
func (m *mockConfigProvider) GetEmailSender() string   { return m.sender }
func (m *mockConfigProvider) GetEmailAPIKey() string   { return m.apiKey }

func TestNewEmailService(t *testing.T) {
	t.Run("log", func(t *testing.T) {
		sender, err := NewEmailService(&mockConfigProvider{provider: "log"})
		require.NoError(t, err)
		assert.IsType(t, &LogSender{}, sender)
	})

	t.Run("resend requires an api key", func(t *testing.T) {
		_, err := NewEmailService(&mockConfigProvider{provider: "resend"})
		assert.ErrorContains(t, err, "EMAIL_API_KEY")
	})

	t.Run("resend", func(t *testing.T) {
		sender, err := NewEmailService(&mockConfigProvider{provider: "resend", apiKey: "key"})
		require.NoError(t, err)
		assert.IsType(t, &ResendSender{}, sender)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewEmailService(&mockConfigProvider{provider: "pigeon"})
		assert.ErrorContains(t, err, "pigeon")
	})
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender("noreply@example.com", slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.Send(context.Background(), domain.Email{To: "john@example.com", Subject: "Hi", HTMLBody: "<p>x</p>"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=john@example.com")
	assert.Contains(t, buf.String(), "from=noreply@example.com")
}

func TestResendSender(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.To == "bounce@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewResendSender("secret-key", "")
	sender.endpoint = srv.URL

	err := sender.Send(context.Background(), domain.Email{To: "john@example.com", Subject: "Hi", HTMLBody: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", auth)
	assert.Equal(t, "john@example.com", got.To)
	assert.Contains(t, got.From, "onboarding@resend.dev")

	err = sender.Send(context.Background(), domain.Email{To: "bounce@example.com"})
	assert.ErrorContains(t, err, "status 422")
}

// captureSender records every email instead of sending it.
type captureSender struct {
	mu   sync.Mutex
	sent []domain.Email
}

func (c *captureSender) Send(ctx context.Context, e domain.Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, e)
	return nil
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestWelcomeSubscriber(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &captureSender{}
	require.NoError(t, NewWelcomeSubscriber(sender, "http://localhost:8080").Start(ctx, bridge))

	ev := pubsub.AccountRegistered{AccountID: "acc-1", FullName: "John <b>Doe</b>", Email: "john@example.com"}
	require.NoError(t, pubsub.AccountRegisteredEvent.Publish(ctx, bridge, ev.AccountID, ev))

	require.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, "john@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTMLBody, "John &lt;b&gt;Doe&lt;/b&gt;")
}
