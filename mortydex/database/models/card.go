package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
	RaritySpecial   Rarity = "SPECIAL"
)

// Card is a single collectible. CharacterID points into the external catalog
// and is intentionally not unique per card; duplicates drive the duplicate
// report. AlbumID is the ownership edge and the only field a trade mutates.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID            int64  `bun:"id,pk,autoincrement"`
	AlbumID       int64  `bun:"album_id,notnull"`
	CharacterID   int64  `bun:"character_id,notnull"`
	CharacterName string `bun:"character_name,notnull"`
	Rarity        Rarity `bun:"rarity,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
