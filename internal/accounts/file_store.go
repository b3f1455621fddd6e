package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nfrund/signup/internal/domain"
	"github.com/spf13/afero"
)

// FileStore keeps all accounts in a single JSON document. Writes replace the
// document atomically through a temporary file and a rename.
type FileStore struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path on fs. The file is created on
// the first write.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

func (s *FileStore) load() ([]domain.Account, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var accounts []domain.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts file: %w", err)
	}
	return accounts, nil
}

func (s *FileStore) save(accounts []domain.Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create accounts directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace accounts file: %w", err)
	}
	return nil
}

// Create implements domain.AccountRepository.
func (s *FileStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return err
	}
	key := NormalizeEmail(account.Email)
	for _, existing := range accounts {
		if NormalizeEmail(existing.Email) == key {
			return domain.ErrAccountExists
		}
	}
	return s.save(append(accounts, *account))
}

// FindByEmail implements domain.AccountRepository.
func (s *FileStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return nil, err
	}
	key := NormalizeEmail(email)
	for i := range accounts {
		if NormalizeEmail(accounts[i].Email) == key {
			return &accounts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
