package repositories

import (
	"context"
	"fmt"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/uptrace/bun"
)

type AlbumRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Album, error)
	// GetCards returns every card in the album, oldest first.
	GetCards(ctx context.Context, albumID int64) ([]*models.Card, error)
	// CountDistinctCharacters counts unique catalog characters in the album,
	// ignoring duplicate copies.
	CountDistinctCharacters(ctx context.Context, albumID int64) (int, error)
}

type albumRepository struct {
	*BaseRepository
}

func NewAlbumRepository(db *bun.DB) AlbumRepository {
	return &albumRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *albumRepository) GetByUserID(ctx context.Context, userID int64) (*models.Album, error) {
	album := new(models.Album)
	err := r.db.NewSelect().
		Model(album).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "album", userID, err)
	}
	return album, nil
}

func (r *albumRepository) GetCards(ctx context.Context, albumID int64) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("album_id = ?", albumID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get album cards: %w", err)
	}
	return cards, nil
}

func (r *albumRepository) CountDistinctCharacters(ctx context.Context, albumID int64) (int, error) {
	var count int
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		ColumnExpr("count(DISTINCT character_id)").
		Where("album_id = ?", albumID).
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct characters: %w", err)
	}
	return count, nil
}
