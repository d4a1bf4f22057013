package transfers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/events"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransferStore is what the app layer needs from the ledger store
type TransferStore interface {
	// WithinTx runs fn in one transaction at the given isolation level.
	// Errors from the store are classified with the sqlutil sentinels.
	WithinTx(ctx context.Context, level sqlutil.IsolationLevel, fn func(tx TransferTx) error) error
	ListPendingTransfers(ctx context.Context, filter ListTransfersFilter) ([]models.TransferListing, int, error)
}

// TransferTx is the set of reads and writes available inside a store transaction.
// Point reads return sqlutil.ErrNotFound when the row does not exist.
type TransferTx interface {
	GetTeamSnapshot(ctx context.Context, teamID uuid.UUID) (TeamSnapshot, error)
	CountRoster(ctx context.Context, teamID uuid.UUID) (int, error)
	GetTeamPlayer(ctx context.Context, teamID, playerID uuid.UUID) (models.Player, error)
	HasPendingTransfer(ctx context.Context, playerID uuid.UUID) (bool, error)
	GetTransfer(ctx context.Context, id uuid.UUID) (models.Transfer, error)
	GetTransferForPurchase(ctx context.Context, id uuid.UUID) (PurchaseSnapshot, error)
	CreateTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error)
	// DeletePendingTransfer reports false when the row was no longer PENDING.
	DeletePendingTransfer(ctx context.Context, id uuid.UUID) (bool, error)
	// CompleteTransfer moves PENDING to COMPLETED and reports false if the row was not PENDING.
	CompleteTransfer(ctx context.Context, id, buyerTeamID uuid.UUID, completedAt time.Time) (bool, error)
	// MovePlayer reassigns the player and reports false if it was not on fromTeamID.
	MovePlayer(ctx context.Context, playerID, fromTeamID, toTeamID uuid.UUID) (bool, error)
	AdjustBudget(ctx context.Context, teamID uuid.UUID, delta decimal.Decimal) error
	InsertOutboxEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any) error
}

// App runs the transfer market: listing, cancelling, buying and searching
type App struct {
	store TransferStore
	rules MarketRules
	clock clockwork.Clock
}

// NewApp creates a new transfers App
func NewApp(store TransferStore, rules MarketRules, clock clockwork.Clock) *App {
	return &App{
		store: store,
		rules: rules,
		clock: clock,
	}
}

// Rules returns the market rules the app enforces.
func (a *App) Rules() MarketRules {
	return a.rules
}

// CreateTransfer lists one of the caller's players at the requested asking price
func (a *App) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*models.Transfer, error) {
	if req.UserID == uuid.Nil || req.TeamID == uuid.Nil || req.PlayerID == uuid.Nil {
		return nil, invalidRequest("user, team and player ids are required")
	}
	if err := validateAskingPrice(req.Price); err != nil {
		return nil, err
	}

	var created models.Transfer
	err := a.store.WithinTx(ctx, sqlutil.ReadCommitted, func(tx TransferTx) error {
		team, err := a.ownedTeam(ctx, tx, req.UserID, req.TeamID)
		if err != nil {
			return err
		}
		if team.RosterSize <= a.rules.RosterFloor {
			return rejected(RuleRosterFloor, "team has %d players and cannot go below %d", team.RosterSize, a.rules.RosterFloor)
		}

		if _, err := tx.GetTeamPlayer(ctx, team.ID, req.PlayerID); err != nil {
			if errors.Is(err, sqlutil.ErrNotFound) {
				return notFound("player %s not found on team", req.PlayerID)
			}
			return err
		}

		pending, err := tx.HasPendingTransfer(ctx, req.PlayerID)
		if err != nil {
			return err
		}
		if pending {
			return rejected(RuleDuplicateListing, "player %s is already listed", req.PlayerID)
		}

		now := a.clock.Now().UTC()
		created, err = tx.CreateTransfer(ctx, models.Transfer{
			ID:        uuid.New(),
			PlayerID:  req.PlayerID,
			TeamID:    team.ID,
			Price:     req.Price,
			Status:    models.TransferStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			if errors.Is(err, sqlutil.ErrUniqueViolation) {
				return rejected(RuleDuplicateListing, "player %s is already listed", req.PlayerID)
			}
			return err
		}

		return tx.InsertOutboxEvent(ctx, created.ID, events.TransferListed, events.TransferListedPayload{
			TransferID: created.ID.String(),
			PlayerID:   created.PlayerID.String(),
			TeamID:     created.TeamID.String(),
			Price:      created.Price.StringFixed(2),
			ListedAt:   created.CreatedAt,
		})
	})
	if err != nil {
		return nil, a.fail(err, "create transfer")
	}

	log.Info().
		Str("transfer_id", created.ID.String()).
		Str("player_id", created.PlayerID.String()).
		Str("team_id", created.TeamID.String()).
		Str("price", created.Price.String()).
		Msg("Transfer listed")
	return &created, nil
}

// CancelTransfer deletes a pending listing owned by the caller's team
func (a *App) CancelTransfer(ctx context.Context, req CancelTransferRequest) error {
	if req.UserID == uuid.Nil || req.TeamID == uuid.Nil || req.TransferID == uuid.Nil {
		return invalidRequest("user, team and transfer ids are required")
	}

	var transfer models.Transfer
	err := a.store.WithinTx(ctx, sqlutil.ReadCommitted, func(tx TransferTx) error {
		team, err := a.ownedTeam(ctx, tx, req.UserID, req.TeamID)
		if err != nil {
			return err
		}

		transfer, err = tx.GetTransfer(ctx, req.TransferID)
		if err != nil {
			if errors.Is(err, sqlutil.ErrNotFound) {
				return notFound("transfer %s not found", req.TransferID)
			}
			return err
		}
		if transfer.TeamID != team.ID {
			return forbidden("transfer %s belongs to another team", req.TransferID)
		}
		if !transfer.IsPending() {
			return rejected(RuleNotPending, "transfer %s is %s and cannot be cancelled", transfer.ID, transfer.Status)
		}

		deleted, err := tx.DeletePendingTransfer(ctx, transfer.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return rejected(RuleNotPending, "transfer %s was completed and cannot be cancelled", transfer.ID)
		}

		return tx.InsertOutboxEvent(ctx, transfer.ID, events.TransferCancelled, events.TransferCancelledPayload{
			TransferID:  transfer.ID.String(),
			PlayerID:    transfer.PlayerID.String(),
			TeamID:      transfer.TeamID.String(),
			CancelledAt: a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return a.fail(err, "cancel transfer")
	}

	log.Info().
		Str("transfer_id", transfer.ID.String()).
		Str("team_id", transfer.TeamID.String()).
		Msg("Transfer cancelled")
	return nil
}

// ListTransfers searches pending listings
func (a *App) ListTransfers(ctx context.Context, filter ListTransfersFilter) (*ListTransfersResult, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	listings, total, err := a.store.ListPendingTransfers(ctx, filter)
	if err != nil {
		return nil, infrastructure("failed to list transfers", err)
	}
	if listings == nil {
		listings = []models.TransferListing{}
	}

	return &ListTransfersResult{
		Transfers: listings,
		Total:     total,
		Limit:     filter.Limit,
		Page:      filter.Page,
	}, nil
}

func normalizeFilter(f ListTransfersFilter) (ListTransfersFilter, error) {
	f.TeamName = strings.TrimSpace(f.TeamName)
	f.PlayerName = strings.TrimSpace(f.PlayerName)

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return f, invalidRequest("min price must not be negative")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return f, invalidRequest("max price must not be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return f, invalidRequest("min price must not exceed max price")
	}

	switch {
	case f.Limit == 0:
		f.Limit = DefaultListLimit
	case f.Limit < 0 || f.Limit > MaxListLimit:
		return f, invalidRequest("limit must be between 1 and %d", MaxListLimit)
	}
	switch {
	case f.Page == 0:
		f.Page = 1
	case f.Page < 0:
		return f, invalidRequest("page must be at least 1")
	}
	return f, nil
}

// ownedTeam loads the team and checks the caller owns it.
func (a *App) ownedTeam(ctx context.Context, tx TransferTx, userID, teamID uuid.UUID) (TeamSnapshot, error) {
	team, err := tx.GetTeamSnapshot(ctx, teamID)
	if err != nil {
		if errors.Is(err, sqlutil.ErrNotFound) {
			return TeamSnapshot{}, notFound("team %s not found", teamID)
		}
		return TeamSnapshot{}, err
	}
	if team.UserID != userID {
		return TeamSnapshot{}, forbidden("team %s is not owned by caller", teamID)
	}
	return team, nil
}

// fail turns a store error into a market error. Market errors pass through unchanged.
func (a *App) fail(err error, op string) error {
	var marketErr *Error
	if errors.As(err, &marketErr) {
		log.Debug().Str("op", op).Str("rule", string(marketErr.Rule)).Err(err).Msg("Transfer request refused")
		return marketErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return infrastructure("failed to "+op, err)
	}
	if errors.Is(err, sqlutil.ErrSerialization) {
		return conflict(err)
	}
	log.Error().Str("op", op).Err(err).Msg("Transfer store failure")
	return infrastructure("failed to "+op, err)
}
