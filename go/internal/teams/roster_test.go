package teams

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterGenerator_Generate(t *testing.T) {
	gen := NewRosterGenerator(DefaultRosterPlan, rand.New(rand.NewPCG(1, 2)))
	teamID := uuid.New()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	players := gen.Generate(teamID, now)
	require.Len(t, players, 20)
	assert.Equal(t, 20, gen.Size())

	counts := map[models.Position]int{}
	seen := map[uuid.UUID]bool{}
	for _, p := range players {
		counts[p.Position]++
		assert.Equal(t, teamID, p.TeamID)
		assert.NotEmpty(t, p.Name)
		assert.Equal(t, now, p.CreatedAt)
		assert.False(t, seen[p.ID], "duplicate player id")
		seen[p.ID] = true
	}
	assert.Equal(t, 3, counts[models.PositionGoalkeeper])
	assert.Equal(t, 6, counts[models.PositionDefender])
	assert.Equal(t, 6, counts[models.PositionMidfielder])
	assert.Equal(t, 5, counts[models.PositionForward])
}

func TestRosterGenerator_ValuesWithinSlotRange(t *testing.T) {
	gen := NewRosterGenerator(DefaultRosterPlan, rand.New(rand.NewPCG(7, 7)))
	ranges := map[models.Position]RosterSlot{}
	for _, slot := range DefaultRosterPlan {
		ranges[slot.Position] = slot
	}

	for i := 0; i < 50; i++ {
		for _, p := range gen.Generate(uuid.New(), time.Now()) {
			slot := ranges[p.Position]
			assert.True(t, p.Value.IsInteger(), "value %s is not whole", p.Value)
			assert.GreaterOrEqual(t, p.Value.IntPart(), slot.MinValue)
			assert.LessOrEqual(t, p.Value.IntPart(), slot.MaxValue)
		}
	}
}

func TestRosterGenerator_SeededIsDeterministic(t *testing.T) {
	a := NewRosterGenerator(DefaultRosterPlan, rand.New(rand.NewPCG(3, 4))).Generate(uuid.Nil, time.Time{})
	b := NewRosterGenerator(DefaultRosterPlan, rand.New(rand.NewPCG(3, 4))).Generate(uuid.Nil, time.Time{})

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.True(t, a[i].Value.Equal(b[i].Value))
	}
}
