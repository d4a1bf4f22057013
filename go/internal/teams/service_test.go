package teams_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	teamsv1 "github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/api/teams/v1/teamsv1connect"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/auth"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams/mockteams"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTeamClient(t *testing.T, repo *mockteams.Repository, userID uuid.UUID) teamsv1connect.TeamServiceClient {
	t.Helper()
	verifier, err := auth.NewVerifier("teams-test-secret", clockwork.NewFakeClockAt(epoch))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(teamsv1connect.NewTeamServiceHandler(
		teams.NewService(newApp(repo)),
		connect.WithInterceptors(auth.NewInterceptor(verifier)),
	))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	token, err := verifier.Issue(userID, time.Hour)
	require.NoError(t, err)
	return teamsv1connect.NewTeamServiceClient(server.Client(), server.URL,
		connect.WithInterceptors(auth.NewClientInterceptor(token)))
}

func TestService_GetMyTeam(t *testing.T) {
	repo := &mockteams.Repository{}
	userID := uuid.New()
	team := &models.Team{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Harbour FC",
		Budget:    decimal.RequireFromString("4999999.0525"),
		CreatedAt: epoch,
	}
	players := []models.Player{{
		ID:       uuid.New(),
		TeamID:   team.ID,
		Name:     "Emil Berg",
		Position: models.PositionGoalkeeper,
		Value:    decimal.NewFromInt(120000),
	}}
	repo.On("GetTeamByUser", mock.Anything, userID).Return(team, nil)
	repo.On("ListTeamPlayers", mock.Anything, team.ID).Return(players, nil)

	resp, err := newTeamClient(t, repo, userID).GetMyTeam(context.Background(), connect.NewRequest(&teamsv1.GetMyTeamRequest{}))
	require.NoError(t, err)

	got := resp.Msg.Team
	assert.Equal(t, team.ID.String(), got.Id)
	assert.Equal(t, "4999999.0525", got.Budget)
	require.Len(t, got.Players, 1)
	assert.Equal(t, "GOALKEEPER", got.Players[0].Position)
	assert.Equal(t, "120000.00", got.Players[0].Value)
}

func TestService_GetMyTeam_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code connect.Code
	}{
		{name: "no team", err: teams.ErrTeamNotFound, code: connect.CodeNotFound},
		{name: "store down", err: errors.New("connection refused"), code: connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockteams.Repository{}
			userID := uuid.New()
			repo.On("GetTeamByUser", mock.Anything, userID).Return(nil, tt.err)

			_, err := newTeamClient(t, repo, userID).GetMyTeam(context.Background(), connect.NewRequest(&teamsv1.GetMyTeamRequest{}))
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}
}
