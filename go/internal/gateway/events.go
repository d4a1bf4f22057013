package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
)

// MarketEvent is what websocket clients receive
type MarketEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"`
}

// DecodeEnvelope turns a relayed JetStream message body into a MarketEvent
func DecodeEnvelope(data []byte) (*MarketEvent, error) {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}

	switch env.EventType {
	case events.TransferListed, events.TransferCancelled, events.TransferCompleted:
	default:
		return nil, fmt.Errorf("unknown event type: %q", env.EventType)
	}

	return &MarketEvent{
		ID:          env.EventID,
		Type:        env.EventType,
		AggregateID: env.AggregateID,
		Timestamp:   env.Timestamp,
		Data:        env.Payload,
	}, nil
}
