package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/config"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/dbconfig"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/outbox"
)

func main() {
	// load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	appCfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	cfg := dbconfig.NewConfigFromEnv()
	dsn := cfg.DSN()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to database")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()

	var publisher outbox.Publisher = outbox.LogPublisher{}
	if url := os.Getenv("NATS_URL"); url != "" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = url
		jsCfg.StreamName = appCfg.Outbox.StreamName
		jsCfg.SubjectPrefix = appCfg.Outbox.SubjectPrefix
		js, err := outbox.NewJetStreamPublisher(ctx, jsCfg, clock)
		if err != nil {
			log.Fatal().Err(err).Msg("create JetStream publisher")
		}
		defer js.Close()
		publisher = js
	} else {
		log.Warn().Msg("NATS_URL not set, outbox events will only be logged")
	}

	relay := outbox.NewRelay(outbox.NewRepository(db), publisher, outbox.DefaultRelayConfig())

	ltCfg := outbox.DefaultListenerConfig()
	ltCfg.DatabaseURL = dsn
	if iv := os.Getenv("FALLBACK_INTERVAL"); iv != "" {
		if d, err := time.ParseDuration(iv); err == nil {
			ltCfg.FallbackInterval = d
		}
	}

	listener, err := outbox.NewListener(relay, clock, ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox listener")
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msg("starting outbox relay")
		errCh <- listener.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		<-errCh
		log.Info().Msg("graceful shutdown complete")
	case err := <-errCh:
		log.Error().Err(err).Msg("listener exited unexpectedly")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
