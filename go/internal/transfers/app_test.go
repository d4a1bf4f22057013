package transfers_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransfer(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Lions", "5000000", 20)
	ctx := context.Background()

	transfer, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID:   seller.UserID,
		TeamID:   seller.TeamID,
		PlayerID: seller.Players[0],
		Price:    money("125000.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.TransferStatusPending, transfer.Status)
	assert.Equal(t, seller.TeamID, transfer.TeamID)
	assert.Equal(t, seller.Players[0], transfer.PlayerID)
	assert.True(t, money("125000.50").Equal(transfer.Price))
	assert.Equal(t, epoch, transfer.CreatedAt)

	stored, ok := f.store.Transfer(transfer.ID)
	require.True(t, ok)
	assert.Equal(t, models.TransferStatusPending, stored.Status)

	evts := f.store.Events()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TransferListed, evts[0].EventType)
	assert.Equal(t, transfer.ID, evts[0].AggregateID)

	var payload events.TransferListedPayload
	require.NoError(t, json.Unmarshal(evts[0].Payload, &payload))
	assert.Equal(t, "125000.50", payload.Price)
	assert.Equal(t, seller.Players[0].String(), payload.PlayerID)
}

func TestCreateTransfer_RosterFloor(t *testing.T) {
	ctx := context.Background()

	t.Run("sixteen players can list one", func(t *testing.T) {
		f := newFixture(t)
		seller := f.addManager("Hawks", "5000000", 16)

		_, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
			UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("1000"),
		})
		assert.NoError(t, err)
	})

	t.Run("fifteen players cannot list", func(t *testing.T) {
		f := newFixture(t)
		seller := f.addManager("Hawks", "5000000", 15)

		_, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
			UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("1000"),
		})
		assert.ErrorIs(t, err, transfers.ErrRejected)
		assert.Equal(t, transfers.RuleRosterFloor, transfers.RuleOf(err))
		assert.Empty(t, f.store.Events())
	})
}

func TestCreateTransfer_Duplicate(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Wolves", "5000000", 20)
	ctx := context.Background()
	req := transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[3], Price: money("50000"),
	}

	_, err := f.app.CreateTransfer(ctx, req)
	require.NoError(t, err)

	req.Price = money("60000")
	_, err = f.app.CreateTransfer(ctx, req)
	assert.ErrorIs(t, err, transfers.ErrRejected)
	assert.Equal(t, transfers.RuleDuplicateListing, transfers.RuleOf(err))
	assert.Len(t, f.store.Events(), 1)
}

func TestCreateTransfer_RelistAfterCancel(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Wolves", "5000000", 20)
	ctx := context.Background()
	req := transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[3], Price: money("50000"),
	}

	first, err := f.app.CreateTransfer(ctx, req)
	require.NoError(t, err)
	require.NoError(t, f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, TransferID: first.ID,
	}))

	second, err := f.app.CreateTransfer(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateTransfer_Failures(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Bears", "5000000", 20)
	other := f.addManager("Sharks", "5000000", 20)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transfers.CreateTransferRequest
		kind error
		rule transfers.Rule
	}{
		{
			name: "missing ids",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, Price: money("10")},
			kind: transfers.ErrRejected,
			rule: transfers.RuleInvalidRequest,
		},
		{
			name: "zero price",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("0")},
			kind: transfers.ErrRejected,
			rule: transfers.RuleInvalidPrice,
		},
		{
			name: "negative price",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("-5")},
			kind: transfers.ErrRejected,
			rule: transfers.RuleInvalidPrice,
		},
		{
			name: "sub-cent price",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("10.005")},
			kind: transfers.ErrRejected,
			rule: transfers.RuleInvalidPrice,
		},
		{
			name: "unknown team",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: uuid.New(), PlayerID: seller.Players[0], Price: money("10")},
			kind: transfers.ErrNotFound,
		},
		{
			name: "team of another user",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: other.TeamID, PlayerID: other.Players[0], Price: money("10")},
			kind: transfers.ErrForbidden,
		},
		{
			name: "player of another team",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: other.Players[0], Price: money("10")},
			kind: transfers.ErrNotFound,
		},
		{
			name: "unknown player",
			req:  transfers.CreateTransferRequest{UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: uuid.New(), Price: money("10")},
			kind: transfers.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.app.CreateTransfer(ctx, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.rule, transfers.RuleOf(err))
		})
	}
	assert.Empty(t, f.store.Events())
}

func TestCreateTransfer_StoreConflict(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Bears", "5000000", 20)
	f.store.FailNextCommits(1)

	_, err := f.app.CreateTransfer(context.Background(), transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("10"),
	})
	assert.ErrorIs(t, err, transfers.ErrConflict)
	assert.Empty(t, f.store.Events())
}

func TestCancelTransfer(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Falcons", "5000000", 20)
	ctx := context.Background()

	listed, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("75000"),
	})
	require.NoError(t, err)

	err = f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, TransferID: listed.ID,
	})
	require.NoError(t, err)

	_, ok := f.store.Transfer(listed.ID)
	assert.False(t, ok, "cancelled transfer should be removed")

	evts := f.store.Events()
	require.Len(t, evts, 2)
	assert.Equal(t, events.TransferCancelled, evts[1].EventType)

	result, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	buyer := f.addManager("Ravens", "5000000", 20)
	_, err = f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
		UserID: buyer.UserID, TeamID: buyer.TeamID, TransferID: listed.ID,
	})
	assert.ErrorIs(t, err, transfers.ErrNotFound)
}

func TestCancelTransfer_Failures(t *testing.T) {
	f := newFixture(t)
	seller := f.addManager("Falcons", "5000000", 20)
	other := f.addManager("Eagles", "5000000", 20)
	buyer := f.addManager("Ravens", "5000000", 20)
	ctx := context.Background()

	listed, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[0], Price: money("75000"),
	})
	require.NoError(t, err)
	sold, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
		UserID: seller.UserID, TeamID: seller.TeamID, PlayerID: seller.Players[1], Price: money("80000"),
	})
	require.NoError(t, err)
	_, err = f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
		UserID: buyer.UserID, TeamID: buyer.TeamID, TransferID: sold.ID,
	})
	require.NoError(t, err)

	t.Run("completed transfer", func(t *testing.T) {
		err := f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
			UserID: seller.UserID, TeamID: seller.TeamID, TransferID: sold.ID,
		})
		assert.ErrorIs(t, err, transfers.ErrRejected)
		assert.Equal(t, transfers.RuleNotPending, transfers.RuleOf(err))

		stored, ok := f.store.Transfer(sold.ID)
		require.True(t, ok)
		assert.Equal(t, models.TransferStatusCompleted, stored.Status)
	})

	t.Run("another team's transfer", func(t *testing.T) {
		err := f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
			UserID: other.UserID, TeamID: other.TeamID, TransferID: listed.ID,
		})
		assert.ErrorIs(t, err, transfers.ErrForbidden)
	})

	t.Run("team not owned by caller", func(t *testing.T) {
		err := f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
			UserID: other.UserID, TeamID: seller.TeamID, TransferID: listed.ID,
		})
		assert.ErrorIs(t, err, transfers.ErrForbidden)
	})

	t.Run("unknown transfer", func(t *testing.T) {
		err := f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{
			UserID: seller.UserID, TeamID: seller.TeamID, TransferID: uuid.New(),
		})
		assert.ErrorIs(t, err, transfers.ErrNotFound)
	})

	t.Run("missing ids", func(t *testing.T) {
		err := f.app.CancelTransfer(ctx, transfers.CancelTransferRequest{UserID: seller.UserID})
		assert.Equal(t, transfers.RuleInvalidRequest, transfers.RuleOf(err))
	})

	_, ok := f.store.Transfer(listed.ID)
	assert.True(t, ok, "failed cancellations must leave the listing in place")
}

func TestListTransfers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lions := f.addManager("Lions FC", "5000000", 18)
	tigers := f.addManager("Tigers United", "5000000", 18)
	buyer := f.addManager("Buyers", "5000000", 18)

	striker := f.store.AddPlayer(lions.TeamID, "Lionel Striker", models.PositionForward, money("200000"))
	keeper := f.store.AddPlayer(tigers.TeamID, "Tom Keeper", models.PositionGoalkeeper, money("90000"))
	back := f.store.AddPlayer(tigers.TeamID, "Leo Back", models.PositionDefender, money("60000"))

	list := func(m manager, player uuid.UUID, price string) *models.Transfer {
		t.Helper()
		f.clock.Advance(time.Minute)
		tr, err := f.app.CreateTransfer(ctx, transfers.CreateTransferRequest{
			UserID: m.UserID, TeamID: m.TeamID, PlayerID: player, Price: money(price),
		})
		require.NoError(t, err)
		return tr
	}
	strikerListing := list(lions, striker, "250000")
	keeperListing := list(tigers, keeper, "100000")
	backListing := list(tigers, back, "50000")
	soldListing := list(lions, lions.Players[0], "100000")
	_, err := f.app.BuyPlayer(ctx, transfers.BuyPlayerRequest{
		UserID: buyer.UserID, TeamID: buyer.TeamID, TransferID: soldListing.ID,
	})
	require.NoError(t, err)

	ids := func(r *transfers.ListTransfersResult) []uuid.UUID {
		out := make([]uuid.UUID, len(r.Transfers))
		for i, l := range r.Transfers {
			out[i] = l.ID
		}
		return out
	}
	price := func(s string) *decimal.Decimal { d := money(s); return &d }

	t.Run("defaults return pending newest first", func(t *testing.T) {
		res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, transfers.DefaultListLimit, res.Limit)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, []uuid.UUID{backListing.ID, keeperListing.ID, strikerListing.ID}, ids(res))
		assert.Equal(t, "Leo Back", res.Transfers[0].PlayerName)
		assert.Equal(t, "Tigers United", res.Transfers[0].TeamName)
	})

	t.Run("team name is a case-insensitive substring", func(t *testing.T) {
		res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{TeamName: "  tiGERS "})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{backListing.ID, keeperListing.ID}, ids(res))
	})

	t.Run("player name", func(t *testing.T) {
		res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{PlayerName: "LEO"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{backListing.ID}, ids(res))
	})

	t.Run("price range is inclusive", func(t *testing.T) {
		res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{MinPrice: price("50000"), MaxPrice: price("100000")})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{backListing.ID, keeperListing.ID}, ids(res))
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := f.app.ListTransfers(ctx, transfers.ListTransfersFilter{Limit: 2, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, []uuid.UUID{strikerListing.ID}, ids(res))

		res, err = f.app.ListTransfers(ctx, transfers.ListTransfersFilter{Limit: 2, Page: 5})
		require.NoError(t, err)
		assert.Empty(t, res.Transfers)
		assert.NotNil(t, res.Transfers)
	})

	t.Run("invalid filters", func(t *testing.T) {
		bad := []transfers.ListTransfersFilter{
			{MinPrice: price("-1")},
			{MaxPrice: price("-1")},
			{MinPrice: price("10"), MaxPrice: price("5")},
			{Limit: 101},
			{Limit: -1},
			{Page: -1},
		}
		for _, filter := range bad {
			_, err := f.app.ListTransfers(ctx, filter)
			assert.ErrorIs(t, err, transfers.ErrRejected)
			assert.Equal(t, transfers.RuleInvalidRequest, transfers.RuleOf(err))
		}
	})
}
