package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/items-api/internal/model"
)

type ItemRepo struct{ DB *sql.DB }

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = "id,title,description,owner_id,is_completed,created_at,updated_at"

// Create inserts an item for the owner and returns the stored row.
func (r *ItemRepo) Create(ctx context.Context, ownerID uint64, title, description string) (model.Item, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (title, description, owner_id) VALUES (?,?,?)",
		title, description, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Item{}, err
	}
	return r.GetForOwner(ctx, uint64(id), ownerID)
}

// ListByOwner returns all items belonging to the owner, newest first.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE owner_id=? ORDER BY id DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID,
			&it.IsCompleted, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetForOwner fetches one item scoped to the owner. Queries always
// filter on owner_id so another user's item reads as not found.
func (r *ItemRepo) GetForOwner(ctx context.Context, id, ownerID uint64) (model.Item, error) {
	var it model.Item
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id=? AND owner_id=? LIMIT 1", id, ownerID).
		Scan(&it.ID, &it.Title, &it.Description, &it.OwnerID,
			&it.IsCompleted, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, ErrItemNotFound
	}
	return it, err
}

// UpdateForOwner applies the non-nil fields and returns the updated
// row.
func (r *ItemRepo) UpdateForOwner(ctx context.Context, id, ownerID uint64, title, description *string, isCompleted *bool) (model.Item, error) {
	it, err := r.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	if title != nil {
		it.Title = *title
	}
	if description != nil {
		it.Description = *description
	}
	if isCompleted != nil {
		it.IsCompleted = *isCompleted
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE items SET title=?, description=?, is_completed=? WHERE id=? AND owner_id=?",
		it.Title, it.Description, it.IsCompleted, id, ownerID)
	if err != nil {
		return model.Item{}, err
	}
	return r.GetForOwner(ctx, id, ownerID)
}

// DeleteForOwner removes the item if the owner holds it.
func (r *ItemRepo) DeleteForOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM items WHERE id=? AND owner_id=?", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}
