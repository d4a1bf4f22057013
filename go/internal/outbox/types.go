package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadySent is returned when a notified row was already relayed by
// another path (the fallback poll or a second relay instance).
var ErrAlreadySent = errors.New("outbox event already sent")

// OutboxEvent is one row of transfer_outbox awaiting publication
type OutboxEvent struct {
	ID          uuid.UUID       `json:"id"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}
