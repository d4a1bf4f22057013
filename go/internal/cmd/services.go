package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
)

type Services struct {
	Teams     *teams.Service
	Transfers *transfers.Service
}

func setupServices(pool *pgxpool.Pool, rules transfers.MarketRules, clock clockwork.Clock) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Teams
	teamsRepo := teams.NewRepository(pool)
	teamsApp := teams.NewApp(teamsRepo, teams.NewRosterGenerator(teams.DefaultRosterPlan, nil), clock)
	teamsService := teams.NewService(teamsApp)

	// Transfers
	transfersRepo := transfers.NewRepository(pool)
	transfersApp := transfers.NewApp(transfersRepo, rules, clock)
	transfersService := transfers.NewService(transfersApp)

	return &Services{
		Teams:     teamsService,
		Transfers: transfersService,
	}
}
