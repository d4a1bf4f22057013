package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NotifyChannel is the channel the transfer_outbox insert trigger notifies on
const NotifyChannel = "transfer_outbox_events"

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string
	FallbackInterval time.Duration // How often to poll for missed events
	PingInterval     time.Duration
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    NotifyChannel,
		FallbackInterval: 30 * time.Second,
		PingInterval:     90 * time.Second,
	}
}

// Listener drives a Relay from Postgres notifications plus a fallback poll
type Listener struct {
	listener *pq.Listener
	relay    *Relay
	clock    clockwork.Clock
	cfg      ListenerConfig
}

func NewListener(relay *Relay, clock clockwork.Clock, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return &Listener{
		listener: l,
		relay:    relay,
		clock:    clock,
		cfg:      cfg,
	}, nil
}

// Start blocks until ctx is done. Rows committed while the relay was down are
// picked up by the first fallback pass, which runs immediately.
func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	pingTicker := l.clock.NewTicker(l.cfg.PingInterval)
	fallbackTicker := l.clock.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	if _, err := l.relay.ProcessUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process unsent events")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was re-established; anything missed meanwhile is still unsent
				if _, err := l.relay.ProcessUnsent(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process unsent events")
				}
				continue
			}
			if err := l.relay.HandleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.Chan():
			if _, err := l.relay.ProcessUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.Chan():
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	return l.listener.Close()
}
