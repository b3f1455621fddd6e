// Package accounts turns a validated registration into a stored account. Its
// Service.Register is the submit handler the web form is wired to.
package accounts

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/signup/internal/domain"
	"github.com/nfrund/signup/internal/pubsub"
	"github.com/nfrund/signup/internal/registration"
	"golang.org/x/crypto/bcrypt"
)

// Service registers new accounts.
type Service struct {
	repo      domain.AccountRepository
	publisher pubsub.Publisher
	cost      int
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) { s.cost = cost }
}

// WithPublisher publishes an event for every registered account.
func WithPublisher(p pubsub.Publisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

// NewService creates a Service storing accounts in repo.
func NewService(repo domain.AccountRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repo: repo,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new account for the input. It matches
// registration.SubmitHandler. The input is validated again so the service
// is safe to call without going through the form.
func (s *Service) Register(ctx context.Context, in registration.Input) error {
	if errs := registration.Validate(in); !errs.Empty() {
		return errs
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		FullName:     strings.Join(strings.Fields(in.FullName), " "),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return err
		}
		return fmt.Errorf("create account: %w", err)
	}
	slog.InfoContext(ctx, "Account registered", "account_id", account.ID)

	if s.publisher != nil {
		ev := pubsub.AccountRegistered{
			AccountID:    account.ID,
			FullName:     account.FullName,
			Email:        account.Email,
			RegisteredAt: account.CreatedAt,
		}
		// The account exists at this point; a lost event only skips the welcome mail.
		if err := pubsub.AccountRegisteredEvent.Publish(ctx, s.publisher, account.ID, ev); err != nil {
			slog.ErrorContext(ctx, "Failed to publish account registration", "account_id", account.ID, "error", err)
		}
	}
	return nil
}

// VerifyPassword reports whether password matches the account's hash.
func VerifyPassword(account *domain.Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), passwordKey(password)) == nil
}

// passwordKey digests the password before bcrypt, which rejects inputs over
// 72 bytes. The base64 form keeps NUL bytes out of the bcrypt input.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
