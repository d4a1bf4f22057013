package transfers

import (
	"time"

	"github.com/google/uuid"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest lists one of the caller's players for sale.
type CreateTransferRequest struct {
	UserID   uuid.UUID       `json:"user_id"`
	TeamID   uuid.UUID       `json:"team_id"`
	PlayerID uuid.UUID       `json:"player_id"`
	Price    decimal.Decimal `json:"price"`
}

// CancelTransferRequest withdraws a pending listing of the caller's team.
type CancelTransferRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	TeamID     uuid.UUID `json:"team_id"`
	TransferID uuid.UUID `json:"transfer_id"`
}

// BuyPlayerRequest purchases a pending listing for the caller's team.
type BuyPlayerRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	TeamID     uuid.UUID `json:"team_id"`
	TransferID uuid.UUID `json:"transfer_id"`
}

// PurchaseResult describes a committed purchase.
type PurchaseResult struct {
	TransferID    uuid.UUID       `json:"transfer_id"`
	PlayerID      uuid.UUID       `json:"player_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	BuyerTeamID   uuid.UUID       `json:"buyer_team_id"`
	SellerTeamID  uuid.UUID       `json:"seller_team_id"`
	CompletedAt   time.Time       `json:"completed_at"`
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListTransfersFilter selects pending listings. Zero Limit and Page fall back to defaults.
type ListTransfersFilter struct {
	TeamName   string
	PlayerName string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Limit      int
	Page       int
}

// Offset is the number of rows skipped for the filter's page.
func (f ListTransfersFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListTransfersResult struct {
	Transfers []models.TransferListing `json:"transfers"`
	Total     int                      `json:"total"`
	Limit     int                      `json:"limit"`
	Page      int                      `json:"page"`
}

// TeamSnapshot is a team's owner, budget and live roster size as read inside a transaction.
type TeamSnapshot struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Budget     decimal.Decimal
	RosterSize int
}

// PurchaseSnapshot is a listing joined with its seller's owner and live roster size.
type PurchaseSnapshot struct {
	TransferID       uuid.UUID
	PlayerID         uuid.UUID
	SellerTeamID     uuid.UUID
	Price            decimal.Decimal
	Status           models.TransferStatus
	SellerUserID     uuid.UUID
	SellerRosterSize int
}
