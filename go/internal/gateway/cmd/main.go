package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/gateway"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/outbox"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	port := getEnv("GATEWAY_PORT", "8081")
	natsURL := getEnv("NATS_URL", nats.DefaultURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nc, err := outbox.Connect(natsURL, -1, 2*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to NATS")
	}
	defer nc.Close()

	hub := gateway.NewHub(gateway.DefaultHubConfig())
	consumer, err := gateway.NewEventConsumer(ctx, nc, hub, gateway.DefaultConsumerConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event consumer")
	}

	mux := http.NewServeMux()
	mux.Handle("/ws/market", hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !nc.IsConnected() {
			http.Error(w, "NATS disconnected", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"service":     "market-gateway",
			"connections": hub.ClientCount(),
		})
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", port),
		Handler:     cors.AllowAll().Handler(mux),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go hub.Start(ctx)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer failed")
			stop()
		}
	}()
	go func() {
		log.Info().Str("addr", server.Addr).Str("nats_url", natsURL).Msg("market gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("market gateway shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
