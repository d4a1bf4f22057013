package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus defines the lifecycle state of a transfer listing.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
)

// Transfer is a listing of one player by its current team at a fixed asking
// price. A PENDING transfer may be cancelled (deleted) or completed exactly
// once; a COMPLETED transfer is immutable.
type Transfer struct {
	ID          uuid.UUID       `json:"id"`
	PlayerID    uuid.UUID       `json:"player_id"`
	TeamID      uuid.UUID       `json:"team_id"`
	Price       decimal.Decimal `json:"price"`
	Status      TransferStatus  `json:"status"`
	BuyerTeamID *uuid.UUID      `json:"buyer_team_id,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsPending reports whether the transfer can still be bought or cancelled.
func (t *Transfer) IsPending() bool {
	return t.Status == TransferStatusPending
}

// TransferListing is the read model returned by transfer searches.
type TransferListing struct {
	Transfer
	PlayerName     string          `json:"player_name"`
	PlayerPosition Position        `json:"player_position"`
	PlayerValue    decimal.Decimal `json:"player_value"`
	TeamName       string          `json:"team_name"`
	SellerUserID   uuid.UUID       `json:"seller_user_id"`
}
