package mockteams

import (
	"context"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (r *Repository) EnsureUser(ctx context.Context, email string) (*models.User, error) {
	args := r.Called(ctx, email)
	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}

func (r *Repository) GetTeamByUser(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	args := r.Called(ctx, userID)
	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

func (r *Repository) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	args := r.Called(ctx, teamID)
	var p []models.Player
	if args.Get(0) != nil {
		p = args.Get(0).([]models.Player)
	}
	return p, args.Error(1)
}

func (r *Repository) CreateTeamWithPlayers(ctx context.Context, team models.Team, players []models.Player) (*models.Team, error) {
	args := r.Called(ctx, team, players)
	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}
