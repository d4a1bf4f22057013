package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration // How long to keep messages
	Replicas        int
	DuplicateWindow time.Duration // Window for Nats-Msg-Id deduplication
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:             nats.DefaultURL,
		StreamName:      events.StreamName,
		SubjectPrefix:   events.SubjectPrefix,
		MaxReconnects:   -1, // Infinite
		ReconnectWait:   2 * time.Second,
		MaxAge:          7 * 24 * time.Hour,
		Replicas:        1,
		DuplicateWindow: 2 * time.Hour,
	}
}

// StreamConfig is the JetStream stream that holds the transfer events
func (c JetStreamConfig) StreamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:        c.StreamName,
		Description: "Transfer market events relayed from the outbox",
		Subjects:    []string{c.SubjectPrefix + ">"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      c.MaxAge,
		MaxMsgs:     -1,
		Storage:     jetstream.FileStorage,
		Replicas:    c.Replicas,
		Duplicates:  c.DuplicateWindow,
	}
}

// Connect dials NATS with reconnect logging
func Connect(url string, maxReconnects int, reconnectWait time.Duration) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

type JetStreamPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	clock  clockwork.Clock
	config JetStreamConfig
}

func NewJetStreamPublisher(ctx context.Context, cfg JetStreamConfig, clock clockwork.Clock) (*JetStreamPublisher, error) {
	nc, err := Connect(cfg.URL, cfg.MaxReconnects, cfg.ReconnectWait)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, cfg.StreamConfig()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	log.Info().Str("stream", cfg.StreamName).Msg("JetStream stream ready")

	return &JetStreamPublisher{nc: nc, js: js, clock: clock, config: cfg}, nil
}

func (p *JetStreamPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	msg, err := NewMessage(event, p.config.SubjectPrefix, p.clock.Now().UTC())
	if err != nil {
		return err
	}

	ack, err := p.js.PublishMsg(ctx, msg,
		jetstream.WithMsgID(event.ID.String()),
		jetstream.WithExpectStream(p.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	log.Info().
		Str("subject", msg.Subject).
		Str("event_id", event.ID.String()).
		Uint64("sequence", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("published to JetStream")
	return nil
}

func (p *JetStreamPublisher) Conn() *nats.Conn {
	return p.nc
}

func (p *JetStreamPublisher) Close() error {
	if p.nc != nil {
		p.nc.Close()
	}
	return nil
}

// NewMessage wraps an outbox event in its wire envelope
func NewMessage(event OutboxEvent, subjectPrefix string, now time.Time) (*nats.Msg, error) {
	data, err := json.Marshal(events.Envelope{
		EventID:     event.ID.String(),
		EventType:   event.EventType,
		AggregateID: event.AggregateID.String(),
		Timestamp:   now,
		Payload:     event.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	msg := nats.NewMsg(subjectPrefix + event.EventType)
	msg.Data = data
	msg.Header.Set("Event-Type", event.EventType)
	msg.Header.Set("Event-ID", event.ID.String())
	msg.Header.Set("Aggregate-ID", event.AggregateID.String())
	return msg, nil
}

// LogPublisher only logs events. Used when no NATS_URL is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event OutboxEvent) error {
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("aggregate_id", event.AggregateID.String()).
		RawJSON("payload", event.Payload).
		Msg("outbox event")
	return nil
}
