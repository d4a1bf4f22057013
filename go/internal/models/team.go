package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Team is the single roster owned by a user. Budget is stored with four
// decimal places so that every purchase price is representable exactly.
type Team struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	Players   []Player        `json:"players,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RosterSize returns the number of players loaded on the team.
func (t *Team) RosterSize() int {
	return len(t.Players)
}
