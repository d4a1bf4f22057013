package transfers_test

import (
	"testing"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers/transferstest"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *transferstest.Store
	clock *clockwork.FakeClock
	rules transfers.MarketRules
	app   *transfers.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rules := transfers.DefaultMarketRules()
	rules.RetryBaseDelay = time.Millisecond

	store := transferstest.NewStore()
	clock := clockwork.NewFakeClockAt(epoch)
	return &fixture{
		store: store,
		clock: clock,
		rules: rules,
		app:   transfers.NewApp(store, rules, clock),
	}
}

// manager is a user with one team.
type manager struct {
	UserID  uuid.UUID
	TeamID  uuid.UUID
	Players []uuid.UUID
}

func (f *fixture) addManager(name, budget string, rosterSize int) manager {
	userID := uuid.New()
	teamID, players := f.store.AddTeam(userID, name, money(budget), rosterSize)
	return manager{UserID: userID, TeamID: teamID, Players: players}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
