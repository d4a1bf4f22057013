package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrTeamNotFound is returned when a user has no team yet.
var ErrTeamNotFound = errors.New("team not found")

// StartingBudget is the budget every new team receives.
var StartingBudget = decimal.NewFromInt(5_000_000)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	EnsureUser(ctx context.Context, email string) (*models.User, error)
	GetTeamByUser(ctx context.Context, userID uuid.UUID) (*models.Team, error)
	ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	// CreateTeamWithPlayers stores the team and its roster atomically. If the
	// user already has a team it returns ErrTeamExists.
	CreateTeamWithPlayers(ctx context.Context, team models.Team, players []models.Player) (*models.Team, error)
}

// ErrTeamExists is returned by CreateTeamWithPlayers when the user already owns a team.
var ErrTeamExists = errors.New("user already has a team")

// App handles teams business logic
type App struct {
	repo      TeamsRepository
	generator *RosterGenerator
	clock     clockwork.Clock
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, generator *RosterGenerator, clock clockwork.Clock) *App {
	return &App{
		repo:      repo,
		generator: generator,
		clock:     clock,
	}
}

// GetMyTeam returns the caller's team with its full roster
func (a *App) GetMyTeam(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeamByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	players, err := a.repo.ListTeamPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", team.ID, err)
	}
	team.Players = players
	return team, nil
}

// RegisterUser makes sure a user exists for email and owns a team.
func (a *App) RegisterUser(ctx context.Context, email, teamName string) (*models.User, *models.Team, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil, errors.New("email is required")
	}

	user, err := a.repo.EnsureUser(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to ensure user %s: %w", email, err)
	}
	team, err := a.CreateTeamForUser(ctx, user.ID, teamName)
	if err != nil {
		return nil, nil, err
	}
	return user, team, nil
}

// CreateTeamForUser gives the user a team with a generated roster. It is
// idempotent: a user who already has a team gets the existing one back.
func (a *App) CreateTeamForUser(ctx context.Context, userID uuid.UUID, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("team name is required")
	}

	existing, err := a.repo.GetTeamByUser(ctx, userID)
	switch {
	case err == nil:
		log.Info().Str("user_id", userID.String()).Str("team_id", existing.ID.String()).Msg("User already has a team")
		return existing, nil
	case !errors.Is(err, ErrTeamNotFound):
		return nil, fmt.Errorf("failed to look up team for user %s: %w", userID, err)
	}

	now := a.clock.Now().UTC()
	team := models.Team{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Budget:    StartingBudget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	players := a.generator.Generate(team.ID, now)

	created, err := a.repo.CreateTeamWithPlayers(ctx, team, players)
	if errors.Is(err, ErrTeamExists) {
		// lost a race with a concurrent registration
		return a.repo.GetTeamByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create team for user %s: %w", userID, err)
	}
	created.Players = players

	log.Info().
		Str("user_id", userID.String()).
		Str("team_id", created.ID.String()).
		Int("players", len(players)).
		Msg("Created team")
	return created, nil
}
