package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/signup/internal/accounts"
	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/middleware"
	"github.com/nfrund/signup/internal/server"
	"github.com/nfrund/signup/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type captureSender struct {
	mu     sync.Mutex
	emails []domain.Email
}

func (s *captureSender) Send(ctx context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return nil
}

func (s *captureSender) sent() []domain.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Email(nil), s.emails...)
}

var formIDPattern = regexp.MustCompile(`hx-post="/register/([0-9a-f-]{36})"`)

func setupServer(t *testing.T, cfg config.Provider) (*server.Server, *captureSender) {
	t.Helper()
	sender := &captureSender{}
	s, err := server.New(context.Background(), cfg,
		server.WithRepository(accounts.NewMemoryStore()),
		server.WithEmailSender(sender),
		server.WithBcryptCost(bcrypt.MinCost),
	)
	require.NoError(t, err)
	s.RegisterRoutes()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s, sender
}

func TestRegistrationFlow(t *testing.T) {
	s, sender := setupServer(t, testutils.ConfigForTests(t))

	// Open the form.
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	match := formIDPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, match, 2, "form id is rendered")
	formID := match[1]

	// Submit it.
	values := url.Values{
		"fullName":       {"John Doe"},
		"email":          {"John@Example.com"},
		"password":       {"secret1"},
		"retypePassword": {"secret1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register/"+formID, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))

	// The redirect target shows the success flash.
	home := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		home.AddCookie(cookie)
	}
	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, home)
	assert.Contains(t, rec.Body.String(), "Register successfully")

	account, err := s.Repository().FindByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.True(t, accounts.VerifyPassword(account, "secret1"))

	require.Eventually(t, func() bool { return len(sender.sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	mail := sender.sent()[0]
	assert.Equal(t, "john@example.com", mail.To)
	assert.Contains(t, mail.HTMLBody, "John Doe")
}

func TestRegistrationAPI_Duplicate(t *testing.T) {
	s, _ := setupServer(t, testutils.ConfigForTests(t))
	body := `{"fullName":"John Doe","email":"john@example.com","password":"secret1","retypePassword":"secret1"}`

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusConflict, post())
}

func TestRegisterGet_LimitsFormSessions(t *testing.T) {
	s, _ := setupServer(t, testutils.ConfigForTests(t))

	open := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		s.E.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < middleware.DefaultFormOpensPerMinute; i++ {
		require.Equal(t, http.StatusOK, open("192.0.2.10:1234"), "open %d should be allowed", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, open("192.0.2.10:1234"))
	assert.Equal(t, middleware.DefaultFormOpensPerMinute, s.Forms.Len(), "a rejected request opens no form")

	assert.Equal(t, http.StatusOK, open("192.0.2.11:1234"), "other clients are unaffected")
}

func TestNew_RejectsUnknownPolicy(t *testing.T) {
	cfg := testutils.ConfigForTests(t)
	cfg.NotifyPolicy = "sometimes"
	_, err := server.New(context.Background(), cfg,
		server.WithRepository(accounts.NewMemoryStore()),
		server.WithEmailSender(&captureSender{}),
	)
	assert.ErrorContains(t, err, "sometimes")
}

func TestStaticAndHealth(t *testing.T) {
	s, _ := setupServer(t, testutils.ConfigForTests(t))

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok","forms":0}`, rec.Body.String())
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := setupServer(t, testutils.ConfigForTests(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	require.Eventually(t, func() bool { return s.E.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
