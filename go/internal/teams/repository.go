package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/sqlutil"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Pool is satisfied by *pgxpool.Pool.
type Pool interface {
	db.DBTX
	sqlutil.TxBeginner
}

// Repository implements team data access operations
type Repository struct {
	pool    Pool
	queries *db.Queries
}

// NewRepository creates a new teams repository
func NewRepository(pool Pool) *Repository {
	return &Repository{
		pool:    pool,
		queries: db.New(pool),
	}
}

var _ TeamsRepository = (*Repository)(nil)

// EnsureUser returns the user registered with email, creating it if needed
func (r *Repository) EnsureUser(ctx context.Context, email string) (*models.User, error) {
	dbUser, err := r.queries.UpsertUser(ctx, db.UpsertUserParams{
		ID:    uuid.New(),
		Email: email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &models.User{
		ID:        dbUser.ID,
		Email:     dbUser.Email,
		CreatedAt: dbUser.CreatedAt,
	}, nil
}

// GetTeamByUser retrieves the team owned by userID
func (r *Repository) GetTeamByUser(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	dbTeam, err := r.queries.GetTeamByUser(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by user: %w", err)
	}
	return dbTeamToModel(dbTeam), nil
}

// ListTeamPlayers retrieves the roster of a team
func (r *Repository) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	dbPlayers, err := r.queries.ListTeamPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team players: %w", err)
	}

	players := make([]models.Player, len(dbPlayers))
	for i, p := range dbPlayers {
		players[i] = dbPlayerToModel(p)
	}
	return players, nil
}

// CreateTeamWithPlayers inserts the team and its roster in one transaction
func (r *Repository) CreateTeamWithPlayers(ctx context.Context, team models.Team, players []models.Player) (*models.Team, error) {
	params := db.CreatePlayersBatchParams{
		Ids:       make([]uuid.UUID, len(players)),
		TeamID:    team.ID,
		Names:     make([]string, len(players)),
		Positions: make([]string, len(players)),
		Values:    make([]decimal.Decimal, len(players)),
	}
	for i, p := range players {
		params.Ids[i] = p.ID
		params.Names[i] = p.Name
		params.Positions[i] = string(p.Position)
		params.Values[i] = p.Value
	}

	var created db.Team
	err := sqlutil.Run(ctx, r.pool, sqlutil.ReadCommitted,
		func(tx pgx.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			var err error
			created, err = q.CreateTeam(ctx, db.CreateTeamParams{
				ID:     team.ID,
				UserID: team.UserID,
				Name:   team.Name,
				Budget: team.Budget,
			})
			if err != nil {
				return err
			}
			return q.CreatePlayersBatch(ctx, params)
		},
	)
	if errors.Is(err, sqlutil.ErrUniqueViolation) {
		return nil, ErrTeamExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return dbTeamToModel(created), nil
}

func dbTeamToModel(t db.Team) *models.Team {
	return &models.Team{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Budget:    t.Budget,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func dbPlayerToModel(p db.Player) models.Player {
	return models.Player{
		ID:        p.ID,
		TeamID:    p.TeamID,
		Name:      p.Name,
		Position:  models.Position(p.Position),
		Value:     p.Value,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
