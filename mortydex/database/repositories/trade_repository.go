package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/uptrace/bun"
)

var (
	// ErrNotPending is returned by ExecuteSwap when the proposal has already
	// been accepted by a concurrent call.
	ErrNotPending = errors.New("trade proposal is not pending")
	// ErrOwnershipChanged is returned by ExecuteSwap when accept-time
	// re-validation finds a card that no longer sits in the expected album.
	ErrOwnershipChanged = errors.New("card ownership changed since proposal")
)

type TradeRepository interface {
	Create(ctx context.Context, proposal *models.TradeProposal) error
	GetByID(ctx context.Context, id int64) (*models.TradeProposal, error)
	GetWithRelations(ctx context.Context, id int64) (*models.TradeProposal, error)
	Delete(ctx context.Context, id int64) error
	// ExecuteSwap atomically exchanges the album assignment of the two cards
	// and marks the proposal accepted. Ownership of both cards is re-checked
	// under row locks; see ErrNotPending and ErrOwnershipChanged.
	ExecuteSwap(ctx context.Context, id int64) error
}

type tradeRepository struct {
	*BaseRepository
}

func NewTradeRepository(db *bun.DB) TradeRepository {
	return &tradeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *tradeRepository) Create(ctx context.Context, proposal *models.TradeProposal) error {
	proposal.Status = models.TradePending
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = time.Now()

	_, err := r.db.NewInsert().Model(proposal).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create trade proposal: %w", err)
	}
	return nil
}

func (r *tradeRepository) GetByID(ctx context.Context, id int64) (*models.TradeProposal, error) {
	proposal := new(models.TradeProposal)
	err := r.db.NewSelect().
		Model(proposal).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "trade proposal", id, err)
	}
	return proposal, nil
}

func (r *tradeRepository) GetWithRelations(ctx context.Context, id int64) (*models.TradeProposal, error) {
	proposal := new(models.TradeProposal)
	err := r.db.NewSelect().
		Model(proposal).
		Relation("Offerer").
		Relation("Receiver").
		Relation("OfferedCard").
		Relation("DesiredCard").
		Where("tp.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "trade proposal", id, err)
	}
	return proposal, nil
}

func (r *tradeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*models.TradeProposal)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete trade proposal: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "trade proposal", ID: id}
	}
	return nil
}

func (r *tradeRepository) ExecuteSwap(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(timeoutCtx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the proposal row first so two concurrent accepts serialize here.
	proposal := new(models.TradeProposal)
	err = tx.NewSelect().
		Model(proposal).
		Where("id = ?", id).
		For("UPDATE").
		Scan(timeoutCtx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Entity: "trade proposal", ID: id}
		}
		return fmt.Errorf("failed to get trade proposal: %w", err)
	}
	if proposal.Status != models.TradePending {
		return ErrNotPending
	}

	// Re-validate ownership under row locks: the offered card must still sit
	// in the offerer's album and the desired card in the receiver's album.
	// Rows are locked in ascending id order so two reciprocal proposals
	// accepted concurrently cannot deadlock on each other.
	albums := make(map[int64]*models.Album, 2)
	firstUser, secondUser := orderedPair(proposal.OffererID, proposal.ReceiverID)
	for _, userID := range []int64{firstUser, secondUser} {
		album, err := lockedAlbumOf(timeoutCtx, tx, userID)
		if err != nil {
			return err
		}
		albums[userID] = album
	}
	offererAlbum, receiverAlbum := albums[proposal.OffererID], albums[proposal.ReceiverID]

	cards := make(map[int64]*models.Card, 2)
	firstCard, secondCard := orderedPair(proposal.OfferedCardID, proposal.DesiredCardID)
	for _, cardID := range []int64{firstCard, secondCard} {
		card, err := lockCard(timeoutCtx, tx, cardID)
		if err != nil {
			return err
		}
		cards[cardID] = card
	}
	offered, desired := cards[proposal.OfferedCardID], cards[proposal.DesiredCardID]

	if offered.AlbumID != offererAlbum.ID || desired.AlbumID != receiverAlbum.ID {
		return ErrOwnershipChanged
	}

	// Swap the album assignments.
	now := time.Now()
	if _, err := tx.NewUpdate().
		Model((*models.Card)(nil)).
		Set("album_id = ?", receiverAlbum.ID).
		Set("updated_at = ?", now).
		Where("id = ?", offered.ID).
		Exec(timeoutCtx); err != nil {
		return fmt.Errorf("failed to move offered card: %w", err)
	}
	if _, err := tx.NewUpdate().
		Model((*models.Card)(nil)).
		Set("album_id = ?", offererAlbum.ID).
		Set("updated_at = ?", now).
		Where("id = ?", desired.ID).
		Exec(timeoutCtx); err != nil {
		return fmt.Errorf("failed to move desired card: %w", err)
	}

	if _, err := tx.NewUpdate().
		Model((*models.TradeProposal)(nil)).
		Set("status = ?", models.TradeAccepted).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(timeoutCtx); err != nil {
		return fmt.Errorf("failed to update proposal status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trade transaction: %w", err)
	}

	slog.Info("Trade executed",
		slog.String("type", "db"),
		slog.Int64("proposal_id", id),
		slog.String("proposal_uuid", proposal.ProposalID),
		slog.Int64("offerer_id", proposal.OffererID),
		slog.Int64("receiver_id", proposal.ReceiverID))

	return nil
}

// orderedPair returns the two ids in ascending order, the shared lock
// acquisition order for swap transactions.
func orderedPair(a, b int64) (int64, int64) {
	if b < a {
		return b, a
	}
	return a, b
}

func lockedAlbumOf(ctx context.Context, tx bun.Tx, userID int64) (*models.Album, error) {
	album := new(models.Album)
	err := tx.NewSelect().
		Model(album).
		Where("user_id = ?", userID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "album", ID: userID}
		}
		return nil, fmt.Errorf("failed to lock album for user %d: %w", userID, err)
	}
	return album, nil
}

func lockCard(ctx context.Context, tx bun.Tx, cardID int64) (*models.Card, error) {
	card := new(models.Card)
	err := tx.NewSelect().
		Model(card).
		Where("id = ?", cardID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "card", ID: cardID}
		}
		return nil, fmt.Errorf("failed to lock card %d: %w", cardID, err)
	}
	return card, nil
}
