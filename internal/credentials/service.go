package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/propnest/propnest/internal/shared"
)

// bcrypt ignores input beyond 72 bytes; longer passwords are rejected instead.
const maxPasswordBytes = 72

// Service registers and authenticates users against a Store.
type Service struct {
	store Store
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewService creates a credential service hashing with bcrypt.DefaultCost.
func NewService(store Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// Register hashes password and stores it for username, replacing any earlier
// credential for the same username.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", shared.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", shared.ErrValidation, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	return s.store.Put(ctx, Credential{
		Username:     username,
		PasswordHash: string(hash),
		UpdatedAt:    time.Now().UTC(),
	})
}

// Authenticate reports whether password matches the stored hash for username.
// Unknown users and wrong passwords both yield false; an error is returned
// only when the store itself fails.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	cred, err := s.store.Get(ctx, strings.TrimSpace(username))
	if errors.Is(err, shared.ErrNotFound) {
		// Burn the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// Bootstrap seeds an initial account, typically from configuration at start-up.
func (s *Service) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	return s.Register(ctx, username, password)
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("propnest-dummy-password"), s.cost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
