package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// ConsumerConfig holds configuration for the JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
}

func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		StreamName:    events.StreamName,
		ConsumerName:  "market-gateway",
		SubjectFilter: events.SubjectPrefix + ">",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
	}
}

// Broadcaster receives decoded market events
type Broadcaster interface {
	Broadcast(event *MarketEvent) bool
}

// EventConsumer reads relayed transfer events from JetStream and hands them to the hub
type EventConsumer struct {
	hub      Broadcaster
	consumer jetstream.Consumer
	config   ConsumerConfig
}

func NewEventConsumer(ctx context.Context, nc *nats.Conn, hub Broadcaster, config ConsumerConfig) (*EventConsumer, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		Name:          config.ConsumerName,
		Durable:       config.ConsumerName,
		Description:   "Market feed websocket gateway",
		FilterSubject: config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    config.MaxDeliver,
		AckWait:       config.AckWait,
		MaxAckPending: config.MaxAckPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", config.ConsumerName).
		Str("stream", config.StreamName).
		Msg("JetStream consumer ready")

	return &EventConsumer{hub: hub, consumer: consumer, config: config}, nil
}

// Start consumes until ctx is done
func (ec *EventConsumer) Start(ctx context.Context) error {
	cc, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		ec.handle(msg)
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer cc.Stop()

	<-ctx.Done()
	log.Info().Msg("event consumer shutting down")
	return nil
}

// Acked is the subset of jetstream.Msg the handler uses
type Acked interface {
	Data() []byte
	Subject() string
	Ack() error
	Term() error
}

func (ec *EventConsumer) handle(msg Acked) {
	event, err := DecodeEnvelope(msg.Data())
	if err != nil {
		// redelivery cannot fix a malformed message
		log.Error().Err(err).Str("subject", msg.Subject()).Msg("dropping undecodable message")
		if termErr := msg.Term(); termErr != nil {
			log.Error().Err(termErr).Msg("failed to TERM message")
		}
		return
	}

	ec.hub.Broadcast(event)
	if err := msg.Ack(); err != nil {
		log.Error().Err(err).Msg("failed to ACK message")
	}
}
