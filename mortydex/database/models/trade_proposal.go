package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TradeStatus string

const (
	TradePending  TradeStatus = "PENDING"
	TradeAccepted TradeStatus = "ACCEPTED"
)

// TradeProposal is an offer to exchange two specific cards between two users.
// Status only ever moves PENDING -> ACCEPTED; declined proposals are removed
// rather than kept in a terminal status.
type TradeProposal struct {
	bun.BaseModel `bun:"table:trade_proposals,alias:tp"`

	ID            int64       `bun:"id,pk,autoincrement"`
	ProposalID    string      `bun:"proposal_id,notnull,unique"`
	OffererID     int64       `bun:"offerer_id,notnull"`
	ReceiverID    int64       `bun:"receiver_id,notnull"`
	OfferedCardID int64       `bun:"offered_card_id,notnull"`
	DesiredCardID int64       `bun:"desired_card_id,notnull"`
	Status        TradeStatus `bun:"status,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// Relations for the detail view
	Offerer     *User `bun:"rel:belongs-to,join:offerer_id=id"`
	Receiver    *User `bun:"rel:belongs-to,join:receiver_id=id"`
	OfferedCard *Card `bun:"rel:belongs-to,join:offered_card_id=id"`
	DesiredCard *Card `bun:"rel:belongs-to,join:desired_card_id=id"`
}
