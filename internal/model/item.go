package model

import "time"

// Item models a row in the `items` table. Every item belongs to exactly
// one user via OwnerID; all repository queries are scoped by owner so a
// user can never observe another user's items.
type Item struct {
	ID          uint64    // items.id
	Title       string    // items.title
	Description string    // items.description
	OwnerID     uint64    // items.owner_id
	IsCompleted bool      // items.is_completed
	CreatedAt   time.Time // items.created_at
	UpdatedAt   time.Time // items.updated_at
}
