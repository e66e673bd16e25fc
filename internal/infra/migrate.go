package infra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/propnest/propnest/internal/infra/migrations"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// MigratePostgres applies the embedded postgres migrations through a
// database/sql view of the pool. The view borrows pool connections and is not
// closed here; closing the pool releases them.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	return migrate(ctx, db, dialectPostgres, "postgres")
}

// MigrateSQLite applies the embedded sqlite migrations.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, dialectSQLite, "sqlite")
}

func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dir, err)
	}
	return nil
}
