package accounts

import (
	"context"
	"fmt"

	"github.com/nfrund/signup/internal/config"
	"github.com/nfrund/signup/internal/domain"
	"github.com/spf13/afero"
)

// NewRepository builds the account repository selected by ACCOUNT_STORE.
// The returned close function releases the backing connection, if any.
func NewRepository(ctx context.Context, cfg config.Provider) (domain.AccountRepository, func(), error) {
	switch cfg.GetAccountStore() {
	case "", "memory":
		return NewMemoryStore(), func() {}, nil
	case "file":
		return NewFileStore(afero.NewOsFs(), cfg.GetAccountFile()), func() {}, nil
	case "surreal":
		db, err := ConnectSurreal(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := NewSurrealStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close(context.Background())
			return nil, nil, err
		}
		return store, func() { db.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown account store %q", cfg.GetAccountStore())
	}
}
