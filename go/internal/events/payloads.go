package events

import (
	"encoding/json"
	"time"
)

// Event types written to the transfer outbox. The NATS subject for each is
// SubjectPrefix + type.
const (
	TransferListed    = "TransferListed"
	TransferCancelled = "TransferCancelled"
	TransferCompleted = "TransferCompleted"

	SubjectPrefix = "transfers.events."
	StreamName    = "TRANSFER_EVENTS"
)

// Subject returns the NATS subject an event type is published on
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// TransferListedPayload is the payload for a TransferListed event
type TransferListedPayload struct {
	TransferID string    `json:"transfer_id"`
	PlayerID   string    `json:"player_id"`
	TeamID     string    `json:"team_id"`
	Price      string    `json:"price"`
	ListedAt   time.Time `json:"listed_at"`
}

// TransferCancelledPayload is the payload for a TransferCancelled event
type TransferCancelledPayload struct {
	TransferID  string    `json:"transfer_id"`
	PlayerID    string    `json:"player_id"`
	TeamID      string    `json:"team_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// TransferCompletedPayload is the payload for a TransferCompleted event
type TransferCompletedPayload struct {
	TransferID    string    `json:"transfer_id"`
	PlayerID      string    `json:"player_id"`
	SellerTeamID  string    `json:"seller_team_id"`
	BuyerTeamID   string    `json:"buyer_team_id"`
	PurchasePrice string    `json:"purchase_price"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Envelope wraps an outbox payload on the wire. EventID doubles as the
// JetStream message id so redelivered outbox rows are deduplicated.
type Envelope struct {
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	Timestamp   time.Time       `json:"timestamp"`
	Payload     json.RawMessage `json:"payload"`
}
