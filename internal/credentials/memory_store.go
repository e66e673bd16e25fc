package credentials

import (
	"context"
	"sync"

	"github.com/propnest/propnest/internal/shared"
)

type memoryStore struct {
	mu          sync.RWMutex
	credentials map[string]Credential
}

// NewMemoryStore builds an in-memory credential store. Contents do not survive restarts.
func NewMemoryStore() Store {
	return &memoryStore{credentials: make(map[string]Credential)}
}

func (s *memoryStore) Get(_ context.Context, username string) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[username]
	if !ok {
		return Credential{}, shared.ErrNotFound
	}
	return cred, nil
}

func (s *memoryStore) Put(_ context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[cred.Username] = cred
	return nil
}
