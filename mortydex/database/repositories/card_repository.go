package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/uptrace/bun"
)

type CardRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	// CreateBatch persists a pack of cards as one atomic unit, preserving
	// slice order. Either every card is committed or none is.
	CreateBatch(ctx context.Context, cards []*models.Card) error
}

type cardRepository struct {
	*BaseRepository
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "card", id, err)
	}
	return card, nil
}

func (r *cardRepository) CreateBatch(ctx context.Context, cards []*models.Card) error {
	if len(cards) == 0 {
		return nil
	}

	now := time.Now()
	for _, card := range cards {
		card.CreatedAt = now
		card.UpdatedAt = now
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		// Inserted one by one so generated ids land back on the models in
		// draw order.
		for _, card := range cards {
			if _, err := tx.NewInsert().Model(card).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create card batch: %w", err)
	}
	return nil
}
