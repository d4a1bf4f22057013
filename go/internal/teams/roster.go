package teams

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RosterSlot describes how many players of a position a new team gets and the
// range their whole-unit valuations are drawn from.
type RosterSlot struct {
	Position models.Position
	Count    int
	MinValue int64
	MaxValue int64
}

// DefaultRosterPlan is the 20-player squad every new team starts with.
var DefaultRosterPlan = []RosterSlot{
	{Position: models.PositionGoalkeeper, Count: 3, MinValue: 50_000, MaxValue: 200_000},
	{Position: models.PositionDefender, Count: 6, MinValue: 30_000, MaxValue: 150_000},
	{Position: models.PositionMidfielder, Count: 6, MinValue: 40_000, MaxValue: 180_000},
	{Position: models.PositionForward, Count: 5, MinValue: 50_000, MaxValue: 250_000},
}

var (
	firstNames = []string{
		"Adam", "Bruno", "Carlos", "Dario", "Emil", "Felix", "Goran", "Hugo", "Ivan", "Jonas",
		"Karim", "Luca", "Marco", "Nico", "Omar", "Pablo", "Rafael", "Sami", "Tomas", "Yusuf",
	}
	lastNames = []string{
		"Almeida", "Berg", "Costa", "Dumas", "Eriksen", "Fischer", "Garcia", "Hansen", "Ibrahim", "Jovic",
		"Keller", "Lindqvist", "Moreau", "Novak", "Okafor", "Petrov", "Rossi", "Santos", "Tanaka", "Weber",
	}
)

// RosterGenerator produces the initial players of a team.
type RosterGenerator struct {
	plan []RosterSlot
	rng  *rand.Rand
}

// NewRosterGenerator creates a generator. A nil rng uses a randomly seeded source.
func NewRosterGenerator(plan []RosterSlot, rng *rand.Rand) *RosterGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RosterGenerator{plan: plan, rng: rng}
}

// Size is the number of players Generate returns.
func (g *RosterGenerator) Size() int {
	n := 0
	for _, slot := range g.plan {
		n += slot.Count
	}
	return n
}

// Generate builds a fresh roster for teamID.
func (g *RosterGenerator) Generate(teamID uuid.UUID, now time.Time) []models.Player {
	players := make([]models.Player, 0, g.Size())
	for _, slot := range g.plan {
		for i := 0; i < slot.Count; i++ {
			players = append(players, models.Player{
				ID:        uuid.New(),
				TeamID:    teamID,
				Name:      g.name(),
				Position:  slot.Position,
				Value:     decimal.NewFromInt(g.value(slot.MinValue, slot.MaxValue)),
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}
	return players
}

// value is uniform over [min, max].
func (g *RosterGenerator) value(min, max int64) int64 {
	return min + g.rng.Int64N(max-min+1)
}

func (g *RosterGenerator) name() string {
	return fmt.Sprintf("%s %s", firstNames[g.rng.IntN(len(firstNames))], lastNames[g.rng.IntN(len(lastNames))])
}
