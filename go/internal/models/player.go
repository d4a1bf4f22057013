package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position defines where a player lines up.
type Position string

const (
	PositionGoalkeeper Position = "GOALKEEPER"
	PositionDefender   Position = "DEFENDER"
	PositionMidfielder Position = "MIDFIELDER"
	PositionForward    Position = "FORWARD"
)

// Positions lists every valid position in roster order.
var Positions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

// ParsePosition validates a raw position string.
func ParsePosition(s string) (Position, error) {
	for _, p := range Positions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// Player is a tradeable asset. It belongs to exactly one team at a time and its
// value never changes after generation.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	TeamID    uuid.UUID       `json:"team_id"`
	Name      string          `json:"name"`
	Position  Position        `json:"position"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
