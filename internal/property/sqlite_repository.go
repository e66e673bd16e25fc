package property

import (
	"context"
	"database/sql"
	"errors"

	"github.com/propnest/propnest/internal/shared"
)

// SQLiteRepository stores properties in an embedded SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository builds a repository backed by SQLite.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func sqlitePlaceholder(int) string {
	return "?"
}

// List returns every property.
func (r *SQLiteRepository) List(ctx context.Context) ([]Property, error) {
	items, err := r.query(ctx, selectProperties+` ORDER BY id`)
	if err != nil {
		return nil, storeErr("list properties", err)
	}
	return items, nil
}

// Page returns one page of properties and the overall count.
func (r *SQLiteRepository) Page(ctx context.Context, page, size int) ([]Property, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&total); err != nil {
		return nil, 0, storeErr("count properties", err)
	}
	items, err := r.query(ctx, selectProperties+` ORDER BY id LIMIT ? OFFSET ?`, size, shared.Offset(page, size))
	if err != nil {
		return nil, 0, storeErr("page properties", err)
	}
	return items, total, nil
}

// Get fetches a property by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (Property, error) {
	return r.get(ctx, r.db, id)
}

// Create inserts p and returns it with the generated id.
func (r *SQLiteRepository) Create(ctx context.Context, p Property) (Property, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO properties (address, price, size, description, address_search) VALUES (?, ?, ?, ?, ?)`,
		p.Address, p.Price, p.Size, p.Description, foldAddress(p.Address))
	if err != nil {
		return Property{}, storeErr("create property", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Property{}, storeErr("create property", err)
	}
	p.ID = id
	return p, nil
}

// Update merges patch into the stored row and reads it back in one transaction.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, patch Patch) (Property, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Property{}, storeErr("update property", err)
	}
	defer tx.Rollback() // nolint:errcheck

	res, err := tx.ExecContext(ctx, `UPDATE properties SET
            address = COALESCE(?, address),
            price = COALESCE(?, price),
            size = COALESCE(?, size),
            description = COALESCE(?, description),
            address_search = COALESCE(?, address_search)
        WHERE id = ?`,
		nullable(patch.Address), nullable(patch.Price), nullable(patch.Size), nullable(patch.Description),
		nullable(patch.foldedAddress()), id)
	if err != nil {
		return Property{}, storeErr("update property", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Property{}, storeErr("update property", err)
	}
	if affected == 0 {
		return Property{}, notFound(id)
	}

	p, err := r.get(ctx, tx, id)
	if err != nil {
		return Property{}, err
	}
	if err := tx.Commit(); err != nil {
		return Property{}, storeErr("update property", err)
	}
	return p, nil
}

// Delete removes the property if it exists.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id); err != nil {
		return storeErr("delete property", err)
	}
	return nil
}

// Search returns the properties matching every criterion of f in one query.
func (r *SQLiteRepository) Search(ctx context.Context, f Filter) ([]Property, error) {
	where, args := f.where(sqlitePlaceholder)
	items, err := r.query(ctx, selectProperties+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, storeErr("search properties", err)
	}
	return items, nil
}

// nullable turns a nil pointer into a SQL NULL argument.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteRepository) get(ctx context.Context, q queryer, id int64) (Property, error) {
	var p Property
	err := q.QueryRowContext(ctx, selectProperties+` WHERE id = ?`, id).
		Scan(&p.ID, &p.Address, &p.Price, &p.Size, &p.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, notFound(id)
		}
		return Property{}, storeErr("get property", err)
	}
	return p, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Property{}
	for rows.Next() {
		var p Property
		if err := rows.Scan(&p.ID, &p.Address, &p.Price, &p.Size, &p.Description); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
