// Package credential persists the provider access token between process runs.
package credential

import (
	"context"
	"errors"
	"sync"

	"github.com/dharmasatrya/farewatch/internal/models"
)

var ErrNotFound = errors.New("credential not found")

// Store mirrors the in-memory credential. Implementations are a best-effort
// cache and are not expected to coordinate concurrent writers.
type Store interface {
	Load(ctx context.Context) (models.Credential, error)
	Save(ctx context.Context, cred models.Credential) error
	Evict(ctx context.Context) error
}

var _ Store = (*MemoryStore)(nil)

type MemoryStore struct {
	mu   sync.Mutex
	cred *models.Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil {
		return models.Credential{}, ErrNotFound
	}
	return *s.cred, nil
}

func (s *MemoryStore) Save(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = &cred
	return nil
}

func (s *MemoryStore) Evict(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	return nil
}
