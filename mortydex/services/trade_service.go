package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
)

// TradeDetail is the eagerly resolved view of a proposal: ids plus the
// denormalized names and rarities of everything involved, so the view stays
// renderable even after the referenced entities change.
type TradeDetail struct {
	ID         int64              `json:"id"`
	ProposalID string             `json:"proposal_id"`
	Status     models.TradeStatus `json:"status"`

	OffererID   int64  `json:"offerer_id"`
	OffererName string `json:"offerer_name"`

	ReceiverID   int64  `json:"receiver_id"`
	ReceiverName string `json:"receiver_name"`

	OfferedCardID     int64         `json:"offered_card_id"`
	OfferedCardName   string        `json:"offered_card_name"`
	OfferedCardRarity models.Rarity `json:"offered_card_rarity"`

	DesiredCardID     int64         `json:"desired_card_id"`
	DesiredCardName   string        `json:"desired_card_name"`
	DesiredCardRarity models.Rarity `json:"desired_card_rarity"`
}

// TradeService runs the proposal state machine: propose, accept with the
// atomic ownership swap, delete, and detail lookup.
type TradeService struct {
	trades repositories.TradeRepository
	users  repositories.UserRepository
	cards  repositories.CardRepository
	albums repositories.AlbumRepository
}

func NewTradeService(
	trades repositories.TradeRepository,
	users repositories.UserRepository,
	cards repositories.CardRepository,
	albums repositories.AlbumRepository,
) *TradeService {
	return &TradeService{trades: trades, users: users, cards: cards, albums: albums}
}

// Propose validates ownership on both sides and records a PENDING proposal.
func (s *TradeService) Propose(ctx context.Context, offerUserID, offerCardID, receiveUserID, desiredCardID int64) (*models.TradeProposal, error) {
	if offerUserID == receiveUserID {
		return nil, newError(KindInvalidArgument, "cannot propose a trade with yourself")
	}

	if _, err := s.getUser(ctx, offerUserID); err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, receiveUserID); err != nil {
		return nil, err
	}

	offered, err := s.getCard(ctx, offerCardID)
	if err != nil {
		return nil, err
	}
	desired, err := s.getCard(ctx, desiredCardID)
	if err != nil {
		return nil, err
	}

	offererAlbum, err := s.getAlbum(ctx, offerUserID)
	if err != nil {
		return nil, err
	}
	receiverAlbum, err := s.getAlbum(ctx, receiveUserID)
	if err != nil {
		return nil, err
	}

	if offered.AlbumID != offererAlbum.ID {
		return nil, newError(KindConflict, "offered card %d does not belong to user %d", offerCardID, offerUserID)
	}
	if desired.AlbumID != receiverAlbum.ID {
		return nil, newError(KindConflict, "desired card %d does not belong to user %d", desiredCardID, receiveUserID)
	}

	proposal := &models.TradeProposal{
		ProposalID:    uuid.NewString(),
		OffererID:     offerUserID,
		ReceiverID:    receiveUserID,
		OfferedCardID: offerCardID,
		DesiredCardID: desiredCardID,
	}
	if err := s.trades.Create(ctx, proposal); err != nil {
		return nil, err
	}

	slog.Info("Trade proposed",
		slog.String("type", "sys"),
		slog.Int64("proposal_id", proposal.ID),
		slog.Int64("offerer_id", offerUserID),
		slog.Int64("receiver_id", receiveUserID))

	return proposal, nil
}

// Accept executes the swap. Only the proposal's receiver may accept.
// Ownership of both cards is re-validated at accept time under row locks;
// when a card has moved since the proposal was made, the accept fails with a
// conflict and the proposal stays PENDING.
func (s *TradeService) Accept(ctx context.Context, proposalID, acceptingUserID int64) (*models.TradeProposal, error) {
	proposal, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.ReceiverID != acceptingUserID {
		return nil, newError(KindForbidden, "user %d is not the receiver of proposal %d", acceptingUserID, proposalID)
	}
	if proposal.Status != models.TradePending {
		return nil, newError(KindInvalidState, "proposal %d is %s, not PENDING", proposalID, proposal.Status)
	}

	if err := s.trades.ExecuteSwap(ctx, proposalID); err != nil {
		var nfe *repositories.NotFoundError
		switch {
		case errors.Is(err, repositories.ErrNotPending):
			return nil, wrapError(KindInvalidState, err, "proposal %d already resolved", proposalID)
		case errors.Is(err, repositories.ErrOwnershipChanged):
			return nil, wrapError(KindConflict, err, "card ownership changed since proposal %d was made", proposalID)
		case errors.As(err, &nfe):
			// The swap locks the proposal, both albums and both cards; any of
			// them can be the missing row.
			return nil, wrapError(KindNotFound, err, "%s %v involved in proposal %d not found", nfe.Entity, nfe.ID, proposalID)
		default:
			return nil, err
		}
	}

	return s.getProposal(ctx, proposalID)
}

// Delete removes a proposal. Accepted proposals are trade history and cannot
// be deleted.
func (s *TradeService) Delete(ctx context.Context, proposalID int64) error {
	proposal, err := s.getProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != models.TradePending {
		return newError(KindInvalidState, "proposal %d is %s and cannot be deleted", proposalID, proposal.Status)
	}

	if err := s.trades.Delete(ctx, proposalID); err != nil {
		if repositories.IsNotFound(err) {
			return wrapError(KindNotFound, err, "trade proposal %d not found", proposalID)
		}
		return err
	}
	return nil
}

// Detail resolves the proposal and everything it references in one call.
func (s *TradeService) Detail(ctx context.Context, proposalID int64) (*TradeDetail, error) {
	proposal, err := s.trades.GetWithRelations(ctx, proposalID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "trade proposal %d not found", proposalID)
		}
		return nil, err
	}

	// Relations are left joins; a missing row means a referenced user or
	// card was removed after the proposal was made.
	if proposal.Offerer == nil || proposal.Receiver == nil ||
		proposal.OfferedCard == nil || proposal.DesiredCard == nil {
		return nil, newError(KindNotFound, "trade proposal %d references removed users or cards", proposalID)
	}

	return &TradeDetail{
		ID:         proposal.ID,
		ProposalID: proposal.ProposalID,
		Status:     proposal.Status,

		OffererID:   proposal.OffererID,
		OffererName: proposal.Offerer.Name,

		ReceiverID:   proposal.ReceiverID,
		ReceiverName: proposal.Receiver.Name,

		OfferedCardID:     proposal.OfferedCardID,
		OfferedCardName:   proposal.OfferedCard.CharacterName,
		OfferedCardRarity: proposal.OfferedCard.Rarity,

		DesiredCardID:     proposal.DesiredCardID,
		DesiredCardName:   proposal.DesiredCard.CharacterName,
		DesiredCardRarity: proposal.DesiredCard.Rarity,
	}, nil
}

func (s *TradeService) getUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "user %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *TradeService) getCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "card %d not found", id)
		}
		return nil, err
	}
	return card, nil
}

func (s *TradeService) getAlbum(ctx context.Context, userID int64) (*models.Album, error) {
	album, err := s.albums.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "no album for user %d", userID)
		}
		return nil, err
	}
	return album, nil
}

func (s *TradeService) getProposal(ctx context.Context, id int64) (*models.TradeProposal, error) {
	proposal, err := s.trades.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "trade proposal %d not found", id)
		}
		return nil, err
	}
	return proposal, nil
}
