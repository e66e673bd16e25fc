package property

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/propnest/propnest/internal/shared"
)

// Repository persists properties. Get and Update return an error wrapping
// shared.ErrNotFound for unknown ids; Delete of an unknown id is not an error.
// Lists are ordered by id.
type Repository interface {
	List(ctx context.Context) ([]Property, error)
	Page(ctx context.Context, page, size int) ([]Property, int64, error)
	Get(ctx context.Context, id int64) (Property, error)
	Create(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, id int64, patch Patch) (Property, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f Filter) ([]Property, error)
}

const selectProperties = `SELECT id, address, price, size, description FROM properties`

// PostgresRepository stores properties in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func pgPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// List returns every property.
func (r *PostgresRepository) List(ctx context.Context) ([]Property, error) {
	items, err := r.query(ctx, selectProperties+` ORDER BY id`)
	if err != nil {
		return nil, storeErr("list properties", err)
	}
	return items, nil
}

// Page returns one page of properties and the overall count. Both queries
// run concurrently on separate pool connections.
func (r *PostgresRepository) Page(ctx context.Context, page, size int) ([]Property, int64, error) {
	var (
		items []Property
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM properties`).Scan(&total)
	})
	g.Go(func() error {
		var err error
		items, err = r.query(gctx, selectProperties+` ORDER BY id LIMIT $1 OFFSET $2`, size, shared.Offset(page, size))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, storeErr("page properties", err)
	}
	return items, total, nil
}

// Get fetches a property by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Property, error) {
	rows, err := r.db.Query(ctx, selectProperties+` WHERE id = $1`, id)
	if err != nil {
		return Property{}, storeErr("get property", err)
	}
	return r.one(rows, id, "get property")
}

// Create inserts p and returns it with the generated id.
func (r *PostgresRepository) Create(ctx context.Context, p Property) (Property, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO properties (address, price, size, description, address_search)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`, p.Address, p.Price, p.Size, p.Description, foldAddress(p.Address)).Scan(&p.ID)
	if err != nil {
		return Property{}, storeErr("create property", err)
	}
	return p, nil
}

// Update merges patch into the stored row in a single statement.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (Property, error) {
	rows, err := r.db.Query(ctx, `UPDATE properties SET
            address = COALESCE($2, address),
            price = COALESCE($3, price),
            size = COALESCE($4, size),
            description = COALESCE($5, description),
            address_search = COALESCE($6, address_search)
        WHERE id = $1
        RETURNING id, address, price, size, description`,
		id, patch.Address, patch.Price, patch.Size, patch.Description, patch.foldedAddress())
	if err != nil {
		return Property{}, storeErr("update property", err)
	}
	return r.one(rows, id, "update property")
}

// Delete removes the property if it exists.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id); err != nil {
		return storeErr("delete property", err)
	}
	return nil
}

// Search returns the properties matching every criterion of f in one query.
func (r *PostgresRepository) Search(ctx context.Context, f Filter) ([]Property, error) {
	where, args := f.where(pgPlaceholder)
	items, err := r.query(ctx, selectProperties+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, storeErr("search properties", err)
	}
	return items, nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Property, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Property])
}

func (r *PostgresRepository) one(rows pgx.Rows, id int64, op string) (Property, error) {
	p, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Property])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, notFound(id)
		}
		return Property{}, storeErr(op, err)
	}
	return p, nil
}

func notFound(id int64) error {
	return fmt.Errorf("property %d: %w", id, shared.ErrNotFound)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", shared.ErrStoreUnavailable, op, err)
}
