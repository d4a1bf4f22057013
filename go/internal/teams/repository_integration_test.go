//go:build integration

package teams_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/teams"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/testutil/containers"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RegisterAndLoad(t *testing.T) {
	pool := containers.NewDBContainer(t).Pool(t)
	repo := teams.NewRepository(pool)
	app := teams.NewApp(repo, teams.NewRosterGenerator(teams.DefaultRosterPlan, rand.New(rand.NewPCG(9, 9))), clockwork.NewRealClock())
	ctx := context.Background()

	user, team, err := app.RegisterUser(ctx, "coach@example.com", "Harbour FC")
	require.NoError(t, err)
	assert.True(t, teams.StartingBudget.Equal(team.Budget))

	again, err := repo.EnsureUser(ctx, "coach@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	loaded, err := app.GetMyTeam(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, loaded.ID)
	assert.Len(t, loaded.Players, 20)
	assert.Equal(t, "GOALKEEPER", string(loaded.Players[0].Position))
}

func TestRepository_ConcurrentRegistrationCreatesOneTeam(t *testing.T) {
	pool := containers.NewDBContainer(t).Pool(t)
	repo := teams.NewRepository(pool)
	app := teams.NewApp(repo, teams.NewRosterGenerator(teams.DefaultRosterPlan, nil), clockwork.NewRealClock())
	ctx := context.Background()

	user, err := repo.EnsureUser(ctx, "race@example.com")
	require.NoError(t, err)

	var wg sync.WaitGroup
	ids := make(chan string, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			team, err := app.CreateTeamForUser(ctx, user.ID, "Race FC")
			if assert.NoError(t, err) {
				ids <- team.ID.String()
			}
		}()
	}
	wg.Wait()
	close(ids)

	distinct := map[string]bool{}
	for id := range ids {
		distinct[id] = true
	}
	assert.Len(t, distinct, 1)

	var players int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM players`).Scan(&players))
	assert.Equal(t, 20, players)
}
