package domain

import (
	"context"
	"time"
)

// Account is a registered user account.
type Account struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountRepository defines the contract for account storage.
// It lives in the domain because it's a requirement OF the domain, not
// of the storage implementation.
type AccountRepository interface {
	// Create stores a new account. It returns ErrAccountExists when an
	// account with the same email is already stored.
	Create(ctx context.Context, account *Account) error
	// FindByEmail returns ErrNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*Account, error)
}
