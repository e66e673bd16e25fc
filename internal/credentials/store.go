package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propnest/propnest/internal/shared"
)

// Store persists credentials keyed by username. Get returns shared.ErrNotFound
// for unknown users; Put inserts or replaces.
type Store interface {
	Get(ctx context.Context, username string) (Credential, error)
	Put(ctx context.Context, cred Credential) error
}

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed credential store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches the credential for username.
func (s *PostgresStore) Get(ctx context.Context, username string) (Credential, error) {
	row := s.db.QueryRow(ctx, `SELECT username, password_hash, updated_at FROM credentials WHERE username = $1`, username)
	var cred Credential
	if err := row.Scan(&cred.Username, &cred.PasswordHash, &cred.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Credential{}, shared.ErrNotFound
		}
		return Credential{}, fmt.Errorf("%w: get credential: %v", shared.ErrStoreUnavailable, err)
	}
	cred.UpdatedAt = cred.UpdatedAt.UTC()
	return cred, nil
}

// Put upserts the credential.
func (s *PostgresStore) Put(ctx context.Context, cred Credential) error {
	if cred.UpdatedAt.IsZero() {
		cred.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `INSERT INTO credentials (username, password_hash, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at`,
		cred.Username, cred.PasswordHash, cred.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: put credential: %v", shared.ErrStoreUnavailable, err)
	}
	return nil
}
