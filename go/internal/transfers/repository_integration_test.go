//go:build integration

package transfers_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/testutil/containers"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgFixture struct {
	pool *pgxpool.Pool
	app  *transfers.App
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	pool := containers.NewDBContainer(t).Pool(t)

	rules := transfers.DefaultMarketRules()
	rules.MaxPurchaseAttempts = 10
	rules.RetryBaseDelay = 5 * time.Millisecond
	return &pgFixture{
		pool: pool,
		app:  transfers.NewApp(transfers.NewRepository(pool), rules, clockwork.NewRealClock()),
	}
}

func (f *pgFixture) seedTeam(t *testing.T, name, budget string, rosterSize int) manager {
	t.Helper()
	ctx := context.Background()
	m := manager{UserID: uuid.New(), TeamID: uuid.New()}

	_, err := f.pool.Exec(ctx, `INSERT INTO users (id, email) VALUES ($1, $2)`, m.UserID, m.UserID.String()+"@example.com")
	require.NoError(t, err)
	_, err = f.pool.Exec(ctx, `INSERT INTO teams (id, user_id, name, budget) VALUES ($1, $2, $3, $4::numeric)`,
		m.TeamID, m.UserID, name, budget)
	require.NoError(t, err)

	for i := 0; i < rosterSize; i++ {
		id := uuid.New()
		_, err := f.pool.Exec(ctx,
			`INSERT INTO players (id, team_id, name, position, value) VALUES ($1, $2, $3, 'MIDFIELDER', 100000)`,
			id, m.TeamID, fmt.Sprintf("%s Player %02d", name, i+1))
		require.NoError(t, err)
		m.Players = append(m.Players, id)
	}
	return m
}

func (f *pgFixture) budget(t *testing.T, teamID uuid.UUID) string {
	t.Helper()
	var budget string
	require.NoError(t, f.pool.QueryRow(context.Background(), `SELECT budget::text FROM teams WHERE id = $1`, teamID).Scan(&budget))
	return budget
}

func (f *pgFixture) playerTeam(t *testing.T, playerID uuid.UUID) uuid.UUID {
	t.Helper()
	var teamID uuid.UUID
	require.NoError(t, f.pool.QueryRow(context.Background(), `SELECT team_id FROM players WHERE id = $1`, playerID).Scan(&teamID))
	return teamID
}

func (f *pgFixture) outboxTypes(t *testing.T) []string {
	t.Helper()
	rows, err := f.pool.Query(context.Background(), `SELECT event_type FROM transfer_outbox ORDER BY created_at`)
	require.NoError(t, err)
	defer rows.Close()
	var types []string
	for rows.Next() {
		var et string
		require.NoError(t, rows.Scan(&et))
		types = append(types, et)
	}
	require.NoError(t, rows.Err())
	return types
}

func TestPostgres_PurchaseScenario(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	seller := f.seedTeam(t, "Team A", "1000000", 20)
	buyer := f.seedTeam(t, "Team B", "200000", 20)

	listing, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("100000"),
	})
	require.NoError(t, err)

	result, err := f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
		UserID: buyer.UserID, TeamID: buyer.TeamID, TransferID: listing.ID,
	})
	require.NoError(t, err)
	assert.True(t, money("95000").Equal(result.PurchasePrice))

	assert.Equal(t, "105000.0000", f.budget(t, buyer.TeamID))
	assert.Equal(t, "1095000.0000", f.budget(t, seller.TeamID))
	assert.Equal(t, buyer.TeamID, f.playerTeam(t, seller.Players[0]))

	var status string
	require.NoError(t, f.pool.QueryRow(ctx, `SELECT status FROM transfers WHERE id = $1`, listing.ID).Scan(&status))
	assert.Equal(t, "COMPLETED", status)
	assert.Equal(t, []string{"TransferListed", "TransferCompleted"}, f.outboxTypes(t))
}

func TestPostgres_FractionalPricesStayExact(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	a := f.seedTeam(t, "Alpha", "1000000", 20)
	b := f.seedTeam(t, "Beta", "1000000", 20)
	player := a.Players[0]

	owner, other := a, b
	for i := 0; i < 10; i++ {
		listing, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
			UserID: owner.UserID, TeamID: owner.TeamID, PlayerID: player, Price: money("333.33"),
		})
		require.NoError(t, err)
		_, err = f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
			UserID: other.UserID, TeamID: other.TeamID, TransferID: listing.ID,
		})
		require.NoError(t, err)
		owner, other = other, owner
	}

	assert.Equal(t, "1000000.0000", f.budget(t, a.TeamID))
	assert.Equal(t, "1000000.0000", f.budget(t, b.TeamID))
}

func TestPostgres_ConcurrentBuyers(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	seller := f.seedTeam(t, "Sellers", "1000000", 20)
	listing, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("100000"),
	})
	require.NoError(t, err)

	const n = 8
	buyers := make([]manager, n)
	for i := range buyers {
		buyers[i] = f.seedTeam(t, fmt.Sprintf("Buyer %d", i), "200000", 20)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
				UserID: buyers[i].UserID, TeamID: buyers[i].TeamID, TransferID: listing.ID,
			})
		}(i)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "more than one purchase succeeded")
			winner = i
			continue
		}
		assert.Equal(t, transfers.RuleNotAvailable, transfers.RuleOf(err), "buyer %d: %v", i, err)
	}
	require.NotEqual(t, -1, winner)

	assert.Equal(t, buyers[winner].TeamID, f.playerTeam(t, seller.Players[0]))
	assert.Equal(t, "1095000.0000", f.budget(t, seller.TeamID))
	for i, b := range buyers {
		want := "200000.0000"
		if i == winner {
			want = "105000.0000"
		}
		assert.Equal(t, want, f.budget(t, b.TeamID), "buyer %d", i)
	}
}

func TestPostgres_ConcurrentDuplicateListings(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	seller := f.seedTeam(t, "Sellers", "1000000", 20)

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
				UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("5000"),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, transfers.RuleDuplicateListing, transfers.RuleOf(err), "%v", err)
	}
	assert.Equal(t, 1, succeeded)

	var pending int
	require.NoError(t, f.pool.QueryRow(ctx,
		`SELECT count(*) FROM transfers WHERE player_id = $1 AND status = 'PENDING'`, seller.Players[0]).Scan(&pending))
	assert.Equal(t, 1, pending)
}

func TestPostgres_CancelAndList(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	seller := f.seedTeam(t, "50%_Off United", "1000000", 20)
	other := f.seedTeam(t, "Plain FC", "1000000", 20)

	keep, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("1500.50"),
	})
	require.NoError(t, err)
	drop, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[1], Price: money("2000"),
	})
	require.NoError(t, err)
	_, err = f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: other.UserID, TeamID: other.TeamID, PlayerID: other.Players[0], Price: money("3000"),
	})
	require.NoError(t, err)

	require.NoError(t, f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, TransferID: drop.ID,
	}))

	res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{TeamName: "50%_off"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, keep.ID, res.Transfers[0].ID)
	assert.Equal(t, models.PositionMidfielder, res.Transfers[0].PlayerPosition)
	assert.True(t, money("1500.50").Equal(res.Transfers[0].Price))

	// "%" and "_" are literals, so they must not match "Plain FC"
	res, err = f.app.ListTransfers(ctx, transfers.ListTransfersFilter{TeamName: "%"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	minPrice, maxPrice := money("1500.50"), money("3000")
	res, err = f.app.ListTransfers(ctx, transfers.ListTransfersFilter{MinPrice: &minPrice, MaxPrice: &maxPrice, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Transfers, 1)

	assert.Equal(t, []string{"TransferListed", "TransferListed", "TransferListed", "TransferCancelled"}, f.outboxTypes(t))
}
