package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const accountTable = "account"

var _ domain.AccountRepository = (*SurrealStore)(nil)

// accountRecord is the shape of a row in the account table.
type accountRecord struct {
	ID           *surrealmodels.RecordID       `json:"id,omitempty" surrealdb:"id,omitempty"`
	FullName     string                        `json:"full_name" surrealdb:"full_name"`
	Email        string                        `json:"email" surrealdb:"email"`
	PasswordHash string                        `json:"password_hash" surrealdb:"password_hash"`
	CreatedAt    *surrealmodels.CustomDateTime `json:"created_at,omitempty" surrealdb:"created_at,omitempty"`
}

func (r *accountRecord) toDomain() *domain.Account {
	account := &domain.Account{
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	}
	if r.ID != nil {
		account.ID = fmt.Sprint(r.ID.ID)
	}
	if r.CreatedAt != nil {
		account.CreatedAt = r.CreatedAt.Time
	}
	return account
}

// SurrealStore keeps accounts in the SurrealDB account table.
type SurrealStore struct {
	db *surrealdb.DB
}

// NewSurrealStore creates a store on an open, namespace-selected connection.
func NewSurrealStore(db *surrealdb.DB) *SurrealStore {
	return &SurrealStore{db: db}
}

// ConnectSurreal opens a connection, signs in and selects the configured
// namespace and database.
func ConnectSurreal(ctx context.Context, cfg config.Provider) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.GetDBUrl())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: cfg.GetDBUser(),
		Password: cfg.GetDBPass(),
	}
	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.GetDBNs(), cfg.GetDBDb()); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.InfoContext(ctx, "Successfully signed in to SurrealDB", "namespace", cfg.GetDBNs(), "database", cfg.GetDBDb())
	return db, nil
}

// EnsureSchema defines the account table and its unique email index.
func (s *SurrealStore) EnsureSchema(ctx context.Context) error {
	const schema = `
		DEFINE TABLE IF NOT EXISTS account SCHEMALESS;
		DEFINE INDEX IF NOT EXISTS account_email ON TABLE account COLUMNS email UNIQUE;`
	if _, err := surrealdb.Query[any](ctx, s.db, schema, nil); err != nil {
		return fmt.Errorf("define account schema: %w", err)
	}
	return nil
}

// Create implements domain.AccountRepository.
func (s *SurrealStore) Create(ctx context.Context, account *domain.Account) error {
	if err := ensureUnique(ctx, s.FindByEmail, account.Email); err != nil {
		return err
	}

	data := map[string]any{
		"full_name":     account.FullName,
		"email":         NormalizeEmail(account.Email),
		"password_hash": account.PasswordHash,
		"created_at":    surrealmodels.CustomDateTime{Time: account.CreatedAt},
	}
	vars := map[string]any{
		"id":   surrealmodels.NewRecordID(accountTable, account.ID),
		"data": data,
	}
	if _, err := surrealdb.Query[[]accountRecord](ctx, s.db, "CREATE $id CONTENT $data", vars); err != nil {
		// The unique index catches a concurrent registration of the same email.
		if strings.Contains(err.Error(), "already contains") || strings.Contains(err.Error(), "already exists") {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByEmail implements domain.AccountRepository.
func (s *SurrealStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	vars := map[string]any{"email": NormalizeEmail(email)}
	results, err := surrealdb.Query[[]accountRecord](ctx, s.db, "SELECT * FROM account WHERE email = $email LIMIT 1", vars)
	if err != nil {
		return nil, fmt.Errorf("query account by email: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, domain.ErrNotFound
	}
	return (*results)[0].Result[0].toDomain(), nil
}

// ensureUnique fails with domain.ErrAccountExists when find returns an account
// for email, and with find's error when the lookup itself fails.
func ensureUnique(ctx context.Context, find func(context.Context, string) (*domain.Account, error), email string) error {
	existing, err := find(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check existing account: %w", err)
	case existing != nil:
		return domain.ErrAccountExists
	}
	return nil
}
