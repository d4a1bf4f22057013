package transfers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/sqlutil"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Pool is satisfied by *pgxpool.Pool.
type Pool interface {
	db.DBTX
	sqlutil.TxBeginner
}

// Repository is the Postgres implementation of TransferStore
type Repository struct {
	pool    Pool
	queries *db.Queries
}

func NewRepository(pool Pool) *Repository {
	return &Repository{
		pool:    pool,
		queries: db.New(pool),
	}
}

var _ TransferStore = (*Repository)(nil)

func (r *Repository) WithinTx(ctx context.Context, level sqlutil.IsolationLevel, fn func(tx TransferTx) error) error {
	return sqlutil.Run(ctx, r.pool, level,
		func(tx pgx.Tx) *txRepository { return &txRepository{queries: r.queries.WithTx(tx)} },
		func(q *txRepository) error { return fn(q) },
	)
}

func (r *Repository) ListPendingTransfers(ctx context.Context, filter ListTransfersFilter) ([]models.TransferListing, int, error) {
	teamName := sqlutil.ToContainsPattern(filter.TeamName)
	playerName := sqlutil.ToContainsPattern(filter.PlayerName)
	minPrice := sqlutil.ToNullDecimal(filter.MinPrice)
	maxPrice := sqlutil.ToNullDecimal(filter.MaxPrice)

	rows, err := r.queries.ListPendingTransfers(ctx, db.ListPendingTransfersParams{
		TeamName:   teamName,
		PlayerName: playerName,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Limit:      int32(filter.Limit),
		Offset:     int32(filter.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending transfers: %w", err)
	}

	total, err := r.queries.CountPendingTransfers(ctx, db.CountPendingTransfersParams{
		TeamName:   teamName,
		PlayerName: playerName,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pending transfers: %w", err)
	}

	result := make([]models.TransferListing, len(rows))
	for i, row := range rows {
		result[i] = models.TransferListing{
			Transfer: dbTransferToModel(db.Transfer{
				ID:          row.ID,
				PlayerID:    row.PlayerID,
				TeamID:      row.TeamID,
				Price:       row.Price,
				Status:      row.Status,
				BuyerTeamID: row.BuyerTeamID,
				CompletedAt: row.CompletedAt,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}),
			PlayerName:     row.PlayerName,
			PlayerPosition: models.Position(row.PlayerPosition),
			PlayerValue:    row.PlayerValue,
			TeamName:       row.TeamName,
			SellerUserID:   row.SellerUserID,
		}
	}
	return result, int(total), nil
}

// txRepository binds the sqlc queries to one open transaction.
type txRepository struct {
	queries *db.Queries
}

var _ TransferTx = (*txRepository)(nil)

func (t *txRepository) GetTeamSnapshot(ctx context.Context, teamID uuid.UUID) (TeamSnapshot, error) {
	row, err := t.queries.GetTeamSnapshot(ctx, teamID)
	if err != nil {
		return TeamSnapshot{}, sqlutil.Classify(fmt.Errorf("failed to get team: %w", err))
	}
	return TeamSnapshot{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		Budget:     row.Budget,
		RosterSize: int(row.RosterSize),
	}, nil
}

func (t *txRepository) CountRoster(ctx context.Context, teamID uuid.UUID) (int, error) {
	count, err := t.queries.CountTeamPlayers(ctx, teamID)
	if err != nil {
		return 0, sqlutil.Classify(fmt.Errorf("failed to count roster: %w", err))
	}
	return int(count), nil
}

func (t *txRepository) GetTeamPlayer(ctx context.Context, teamID, playerID uuid.UUID) (models.Player, error) {
	p, err := t.queries.GetTeamPlayer(ctx, db.GetTeamPlayerParams{ID: playerID, TeamID: teamID})
	if err != nil {
		return models.Player{}, sqlutil.Classify(fmt.Errorf("failed to get player: %w", err))
	}
	return models.Player{
		ID:        p.ID,
		TeamID:    p.TeamID,
		Name:      p.Name,
		Position:  models.Position(p.Position),
		Value:     p.Value,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (t *txRepository) HasPendingTransfer(ctx context.Context, playerID uuid.UUID) (bool, error) {
	pending, err := t.queries.HasPendingTransfer(ctx, playerID)
	if err != nil {
		return false, sqlutil.Classify(fmt.Errorf("failed to check pending transfer: %w", err))
	}
	return pending, nil
}

func (t *txRepository) GetTransfer(ctx context.Context, id uuid.UUID) (models.Transfer, error) {
	row, err := t.queries.GetTransfer(ctx, id)
	if err != nil {
		return models.Transfer{}, sqlutil.Classify(fmt.Errorf("failed to get transfer: %w", err))
	}
	return dbTransferToModel(row), nil
}

func (t *txRepository) GetTransferForPurchase(ctx context.Context, id uuid.UUID) (PurchaseSnapshot, error) {
	row, err := t.queries.GetTransferForPurchase(ctx, id)
	if err != nil {
		return PurchaseSnapshot{}, sqlutil.Classify(fmt.Errorf("failed to get transfer: %w", err))
	}
	return PurchaseSnapshot{
		TransferID:       row.ID,
		PlayerID:         row.PlayerID,
		SellerTeamID:     row.TeamID,
		Price:            row.Price,
		Status:           models.TransferStatus(row.Status),
		SellerUserID:     row.SellerUserID,
		SellerRosterSize: int(row.SellerRosterSize),
	}, nil
}

func (t *txRepository) CreateTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error) {
	row, err := t.queries.CreateTransfer(ctx, db.CreateTransferParams{
		ID:        transfer.ID,
		PlayerID:  transfer.PlayerID,
		TeamID:    transfer.TeamID,
		Price:     transfer.Price,
		CreatedAt: transfer.CreatedAt,
	})
	if err != nil {
		return models.Transfer{}, sqlutil.Classify(fmt.Errorf("failed to create transfer: %w", err))
	}
	return dbTransferToModel(row), nil
}

func (t *txRepository) DeletePendingTransfer(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := t.queries.DeletePendingTransfer(ctx, id)
	if err != nil {
		return false, sqlutil.Classify(fmt.Errorf("failed to delete transfer: %w", err))
	}
	return n == 1, nil
}

func (t *txRepository) CompleteTransfer(ctx context.Context, id, buyerTeamID uuid.UUID, completedAt time.Time) (bool, error) {
	n, err := t.queries.CompleteTransfer(ctx, db.CompleteTransferParams{
		ID:          id,
		BuyerTeamID: sqlutil.ToNullUUID(&buyerTeamID),
		CompletedAt: sqlutil.ToTimestamptz(&completedAt),
	})
	if err != nil {
		return false, sqlutil.Classify(fmt.Errorf("failed to complete transfer: %w", err))
	}
	return n == 1, nil
}

func (t *txRepository) MovePlayer(ctx context.Context, playerID, fromTeamID, toTeamID uuid.UUID) (bool, error) {
	n, err := t.queries.MovePlayer(ctx, db.MovePlayerParams{
		ToTeamID:   toTeamID,
		ID:         playerID,
		FromTeamID: fromTeamID,
	})
	if err != nil {
		return false, sqlutil.Classify(fmt.Errorf("failed to move player: %w", err))
	}
	return n == 1, nil
}

func (t *txRepository) AdjustBudget(ctx context.Context, teamID uuid.UUID, delta decimal.Decimal) error {
	n, err := t.queries.AdjustTeamBudget(ctx, db.AdjustTeamBudgetParams{Delta: delta, ID: teamID})
	if err != nil {
		return sqlutil.Classify(fmt.Errorf("failed to adjust budget: %w", err))
	}
	if n != 1 {
		return fmt.Errorf("failed to adjust budget of team %s: %w", teamID, sqlutil.ErrNotFound)
	}
	return nil
}

func (t *txRepository) InsertOutboxEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	err = t.queries.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     data,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return sqlutil.Classify(fmt.Errorf("failed to insert outbox event: %w", err))
	}
	return nil
}

func dbTransferToModel(t db.Transfer) models.Transfer {
	return models.Transfer{
		ID:          t.ID,
		PlayerID:    t.PlayerID,
		TeamID:      t.TeamID,
		Price:       t.Price,
		Status:      models.TransferStatus(t.Status),
		BuyerTeamID: sqlutil.FromNullUUID(t.BuyerTeamID),
		CompletedAt: sqlutil.FromTimestamptz(t.CompletedAt),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
