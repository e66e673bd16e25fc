package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/propnest/propnest/internal/shared"
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore builds a SQLite-backed credential store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get fetches the credential for username.
func (s *SQLiteStore) Get(ctx context.Context, username string) (Credential, error) {
	row := s.db.QueryRowContext(ctx, `SELECT username, password_hash, updated_at FROM credentials WHERE username = ?`, username)
	var (
		cred      Credential
		updatedAt string
	)
	if err := row.Scan(&cred.Username, &cred.PasswordHash, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credential{}, shared.ErrNotFound
		}
		return Credential{}, fmt.Errorf("%w: get credential: %v", shared.ErrStoreUnavailable, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		cred.UpdatedAt = ts
	}
	return cred, nil
}

// Put upserts the credential.
func (s *SQLiteStore) Put(ctx context.Context, cred Credential) error {
	if cred.UpdatedAt.IsZero() {
		cred.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO credentials (username, password_hash, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash, updated_at = excluded.updated_at`,
		cred.Username, cred.PasswordHash, cred.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: put credential: %v", shared.ErrStoreUnavailable, err)
	}
	return nil
}
