package teams

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	teamsv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1/teamsv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	GetMyTeam(ctx context.Context, userID uuid.UUID) (*models.Team, error)
}

// Service implements the TeamService connect interface
type Service struct {
	app TeamsApp
}

// NewService creates a new teams service
func NewService(app TeamsApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the TeamServiceHandler interface
var _ teamsv1connect.TeamServiceHandler = (*Service)(nil)

// GetMyTeam returns the caller's team and roster
func (s *Service) GetMyTeam(ctx context.Context, req *connect.Request[teamsv1.GetMyTeamRequest]) (*connect.Response[teamsv1.GetMyTeamResponse], error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	team, err := s.app.GetMyTeam(ctx, userID)
	if errors.Is(err, ErrTeamNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to load team")
		return nil, connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}

	return connect.NewResponse(&teamsv1.GetMyTeamResponse{
		Team: teamToProto(team),
	}), nil
}

func teamToProto(team *models.Team) *teamsv1.Team {
	players := make([]*teamsv1.Player, len(team.Players))
	for i, p := range team.Players {
		players[i] = &teamsv1.Player{
			Id:       p.ID.String(),
			Name:     p.Name,
			Position: string(p.Position),
			Value:    p.Value.StringFixed(2),
		}
	}
	return &teamsv1.Team{
		Id:        team.ID.String(),
		UserId:    team.UserID.String(),
		Name:      team.Name,
		Budget:    team.Budget.StringFixed(4),
		Players:   players,
		CreatedAt: team.CreatedAt.Format(time.RFC3339Nano),
	}
}
