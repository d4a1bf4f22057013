package main

import (
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1/teamsv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/transfers/v1/transfersv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
)

func setupServer(services *Services, verifier *auth.Verifier, pool *pgxpool.Pool) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services, verifier)
	setupHealthCheck(mux, pool)

	handler := c.Handler(mux)

	// Setup HTTP/2 server
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services, verifier *auth.Verifier) {
	interceptors := connect.WithInterceptors(auth.NewInterceptor(verifier))

	// Register transfer service
	transferServicePath, transferServiceHandler := transfersv1connect.NewTransferServiceHandler(services.Transfers, interceptors)
	mux.Handle(transferServicePath, transferServiceHandler)

	// Register team service
	teamServicePath, teamServiceHandler := teamsv1connect.NewTeamServiceHandler(services.Teams, interceptors)
	mux.Handle(teamServicePath, teamServiceHandler)
}

func setupHealthCheck(mux *http.ServeMux, pool *pgxpool.Pool) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("Failed to write health check response")
		}
	})
}
