package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/config"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/dbconfig"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams"
)

// Manager mirrors the JSON snapshot
type Manager struct {
	Email    string `json:"email"`
	TeamName string `json:"team_name"`
}

func main() {
	path := "go/internal/assets/managers.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var managers []Manager
	if err := json.Unmarshal(data, &managers); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	appCfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	clock := clockwork.NewRealClock()
	verifier, err := auth.NewVerifier(appCfg.JWTSecret(), clock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth: %v (set %s)\n", err, appCfg.Auth.JWTSecretEnv)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	app := teams.NewApp(teams.NewRepository(pool), teams.NewRosterGenerator(teams.DefaultRosterPlan, nil), clock)

	// 3) Register every manager and mint a token for each
	var seeded, errs int
	for _, m := range managers {
		user, team, err := app.RegisterUser(ctx, m.Email, m.TeamName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error seeding %s: %v\n", m.Email, err)
			errs++
			continue
		}
		token, err := verifier.Issue(user.ID, appCfg.Auth.TokenTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error issuing token for %s: %v\n", m.Email, err)
			errs++
			continue
		}
		seeded++
		fmt.Printf("%s\tteam=%s\tbudget=%s\ttoken=%s\n", user.Email, team.ID, team.Budget.StringFixed(2), token)
	}

	// 4) Print summary
	fmt.Printf("Managers seed complete: %d total, %d seeded, %d errors\n", len(managers), seeded, errs)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
