package accounts

import (
	"context"
	"sync"

	"github.com/nfrund/signup/internal/domain"
)

// MemoryStore keeps accounts in a map. It is meant for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]domain.Account)}
}

// Create implements domain.AccountRepository.
func (s *MemoryStore) Create(ctx context.Context, account *domain.Account) error {
	key := NormalizeEmail(account.Email)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return domain.ErrAccountExists
	}
	s.byEmail[key] = *account
	return nil
}

// FindByEmail implements domain.AccountRepository.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &account, nil
}
