package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is what the relay needs from the outbox table
type Store interface {
	FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error)
	FetchByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}

// Publisher delivers an event to the message bus
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

type RelayConfig struct {
	BatchSize  int32
	MaxRetries uint
	RetryDelay time.Duration
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		BatchSize:  100,
		MaxRetries: 5,
		RetryDelay: 200 * time.Millisecond,
	}
}

// Relay moves committed outbox rows onto the bus. Delivery is at least once;
// consumers dedupe on the event id.
type Relay struct {
	store     Store
	publisher Publisher
	cfg       RelayConfig
}

func NewRelay(store Store, publisher Publisher, cfg RelayConfig) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
	}
}

// HandleNotification relays the event whose id arrived on the NOTIFY channel
func (r *Relay) HandleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := r.store.FetchByID(ctx, id)
	if errors.Is(err, ErrAlreadySent) {
		log.Debug().Str("event_id", id.String()).Msg("notified event already sent")
		return nil
	}
	if err != nil {
		return err
	}

	return r.relay(ctx, *event)
}

// ProcessUnsent relays one batch of unsent events and returns how many were sent.
// A failing event is logged and left for the next pass.
func (r *Relay) ProcessUnsent(ctx context.Context) (int, error) {
	unsent, err := r.store.FetchUnsent(ctx, r.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range unsent {
		if err := r.relay(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to relay event")
			continue
		}
		sent++
	}

	if len(unsent) > 0 {
		log.Info().
			Int("sent", sent).
			Int("total", len(unsent)).
			Msg("processed unsent events batch")
	}
	return sent, nil
}

func (r *Relay) relay(ctx context.Context, event OutboxEvent) error {
	if err := r.publishWithRetry(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := r.store.MarkSent(ctx, event.ID); err != nil {
		return err
	}

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Msg("published and marked event as sent")
	return nil
}

func (r *Relay) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.cfg.RetryDelay
	expo.MaxInterval = 10 * r.cfg.RetryDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, r.publisher.Publish(ctx, event)
	},
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(r.cfg.MaxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().
				Err(err).
				Str("event_id", event.ID.String()).
				Dur("retry_in", next).
				Msg("failed to publish, retrying")
		}),
	)
	return err
}
