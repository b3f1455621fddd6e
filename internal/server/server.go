package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/signup/internal/accounts"
	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/email"
	"github.com/nfrund/signup/internal/handlers"
	appmiddleware "github.com/nfrund/signup/internal/middleware"
	"github.com/nfrund/signup/internal/pubsub"
	"github.com/nfrund/signup/internal/registration"
	"github.com/nfrund/signup/internal/rendering"
	"github.com/nfrund/signup/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Forms    *registration.Store
	Accounts *accounts.Service

	repo     domain.AccountRepository
	bus      *pubsub.WatermillBridge
	ctx      context.Context
	cancel   context.CancelFunc
	closers  []func()
	handlers struct {
		home         *handlers.HomeHandler
		registration *handlers.RegistrationHandler
	}
}

type options struct {
	repo       domain.AccountRepository
	emailer    domain.EmailSender
	bcryptCost int
}

// Option overrides a dependency New would otherwise build from the config.
type Option func(*options)

// WithRepository stores accounts in repo instead of the configured store.
func WithRepository(repo domain.AccountRepository) Option {
	return func(o *options) { o.repo = repo }
}

// WithEmailSender sends mail through sender instead of the configured provider.
func WithEmailSender(sender domain.EmailSender) Option {
	return func(o *options) { o.emailer = sender }
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// New creates a new Server instance and wires every component.
func New(ctx context.Context, cfg config.Provider, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	policy, err := registration.ParseNotifyPolicy(cfg.GetNotifyPolicy())
	if err != nil {
		return nil, err
	}

	s := &Server{Cfg: cfg}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.repo = o.repo
	if s.repo == nil {
		repo, closeRepo, err := accounts.NewRepository(ctx, cfg)
		if err != nil {
			s.cancel()
			return nil, fmt.Errorf("failed to initialize account store: %w", err)
		}
		s.repo = repo
		s.closers = append(s.closers, closeRepo)
	}

	emailer := o.emailer
	if emailer == nil {
		emailer, err = email.NewEmailService(cfg)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to initialize email service: %w", err)
		}
	}

	s.bus = pubsub.NewWatermillBridge()
	s.closers = append(s.closers, func() { _ = s.bus.Close() })
	welcome := email.NewWelcomeSubscriber(emailer, cfg.GetAppBaseURL())
	if err := welcome.Start(s.ctx, s.bus); err != nil {
		s.close()
		return nil, fmt.Errorf("failed to start welcome subscriber: %w", err)
	}

	serviceOpts := []accounts.ServiceOption{accounts.WithPublisher(s.bus)}
	if o.bcryptCost > 0 {
		serviceOpts = append(serviceOpts, accounts.WithBcryptCost(o.bcryptCost))
	}
	s.Accounts = accounts.NewService(s.repo, serviceOpts...)

	s.Forms = registration.NewStore(func() *registration.Form {
		return registration.NewForm(
			s.Accounts.Register,
			registration.WithNotifier(registration.LogNotifier{}),
			registration.WithNotifyPolicy(policy),
		)
	}, cfg.GetFormTTL())

	renderer := rendering.NewUniversalRenderer()
	s.handlers.home = handlers.NewHomeHandler(s.Forms)
	s.handlers.registration = handlers.NewRegistrationHandler(s.Forms, renderer)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appmiddleware.FromContext(c.Request().Context()).Info("Request handled",
				"uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.Locale)

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s.E = e
	return s, nil
}

// Repository is a getter for the account store, useful for testing.
func (s *Server) Repository() domain.AccountRepository {
	return s.repo
}

// setupErrorHandling logs unhandled errors with a stack trace before
// answering 500. Errors the handlers raised on purpose keep echo's default
// handling.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if _, ok := err.(*echo.HTTPError); ok {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		slog.ErrorContext(c.Request().Context(), "Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError), c)
	}
}
