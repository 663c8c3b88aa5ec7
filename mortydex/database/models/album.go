package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Album is the collection container for a user's cards. Exactly one album
// exists per user; it is created in the same transaction as the user.
type Album struct {
	bun.BaseModel `bun:"table:albums,alias:a"`

	ID     int64 `bun:"id,pk,autoincrement"`
	UserID int64 `bun:"user_id,notnull,unique"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
