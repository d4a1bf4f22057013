package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	rules, err := cfg.MarketRules()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load market rules")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup database")
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	verifier, err := auth.NewVerifier(cfg.JWTSecret(), clock)
	if err != nil {
		log.Fatal().Err(err).Str("env", cfg.Auth.JWTSecretEnv).Msg("Failed to setup auth")
	}

	services := setupServices(pool, rules, clock)
	server := setupServer(services, verifier, pool)

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Int("roster_floor", rules.RosterFloor).
			Int("roster_ceiling", rules.RosterCeiling).
			Str("price_factor", rules.PriceFactor.String()).
			Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
