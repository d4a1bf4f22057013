// Package transferstest provides an in-memory transactional store for
// exercising the transfer market without Postgres.
package transferstest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/models"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/sqlutil"
	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/transfers"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutboxEvent is a committed outbox row.
type OutboxEvent struct {
	AggregateID uuid.UUID
	EventType   string
	Payload     json.RawMessage
}

type team struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Budget decimal.Decimal
}

type state struct {
	teams     map[uuid.UUID]team
	players   map[uuid.UUID]models.Player
	transfers map[uuid.UUID]models.Transfer
	outbox    []OutboxEvent
}

func (s *state) clone() *state {
	c := &state{
		teams:     make(map[uuid.UUID]team, len(s.teams)),
		players:   make(map[uuid.UUID]models.Player, len(s.players)),
		transfers: make(map[uuid.UUID]models.Transfer, len(s.transfers)),
		outbox:    append([]OutboxEvent(nil), s.outbox...),
	}
	for k, v := range s.teams {
		c.teams[k] = v
	}
	for k, v := range s.players {
		c.players[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	return c
}

func (s *state) rosterSize(teamID uuid.UUID) int {
	n := 0
	for _, p := range s.players {
		if p.TeamID == teamID {
			n++
		}
	}
	return n
}

// Store runs each transaction against a private copy of the whole state and
// swaps it in on commit. Transactions are applied one at a time.
type Store struct {
	mu          sync.Mutex
	state       *state
	failCommits int
	failErr     error
	commits     int
}

func NewStore() *Store {
	return &Store{state: (&state{}).clone()}
}

var _ transfers.TransferStore = (*Store)(nil)

// FailNextCommits makes the next n transactions abort with a serialization failure at commit.
func (s *Store) FailNextCommits(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommits = n
}

// FailNextTx makes the next transaction fail with err before running.
func (s *Store) FailNextTx(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Commits returns the number of committed transactions.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) WithinTx(ctx context.Context, _ sqlutil.IsolationLevel, fn func(tx transfers.TransferTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if s.failErr != nil {
		err := s.failErr
		s.failErr = nil
		return err
	}

	work := s.state.clone()
	if err := fn(&tx{state: work}); err != nil {
		return err
	}
	if s.failCommits > 0 {
		s.failCommits--
		return fmt.Errorf("commit transaction: %w", sqlutil.ErrSerialization)
	}
	s.state = work
	s.commits++
	return nil
}

func (s *Store) ListPendingTransfers(ctx context.Context, filter transfers.ListTransfersFilter) ([]models.TransferListing, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamName := strings.ToLower(strings.TrimSpace(filter.TeamName))
	playerName := strings.ToLower(strings.TrimSpace(filter.PlayerName))

	var matched []models.TransferListing
	for _, t := range s.state.transfers {
		if !t.IsPending() {
			continue
		}
		p := s.state.players[t.PlayerID]
		tm := s.state.teams[t.TeamID]
		if teamName != "" && !strings.Contains(strings.ToLower(tm.Name), teamName) {
			continue
		}
		if playerName != "" && !strings.Contains(strings.ToLower(p.Name), playerName) {
			continue
		}
		if filter.MinPrice != nil && t.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && t.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		matched = append(matched, models.TransferListing{
			Transfer:       t,
			PlayerName:     p.Name,
			PlayerPosition: p.Position,
			PlayerValue:    p.Value,
			TeamName:       tm.Name,
			SellerUserID:   tm.UserID,
		})
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	total := len(matched)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit, total)
	return matched[start:end], total, nil
}

// Seeding and inspection helpers.

// AddTeam creates a team owned by userID with rosterSize midfielders valued at 100000.
func (s *Store) AddTeam(userID uuid.UUID, name string, budget decimal.Decimal, rosterSize int) (uuid.UUID, []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.state.teams[id] = team{ID: id, UserID: userID, Name: name, Budget: budget}
	players := make([]uuid.UUID, rosterSize)
	for i := range players {
		pid := uuid.New()
		s.state.players[pid] = models.Player{
			ID:       pid,
			TeamID:   id,
			Name:     fmt.Sprintf("%s Player %02d", name, i+1),
			Position: models.PositionMidfielder,
			Value:    decimal.NewFromInt(100000),
		}
		players[i] = pid
	}
	return id, players
}

// AddPlayer puts a named player on a team.
func (s *Store) AddPlayer(teamID uuid.UUID, name string, position models.Position, value decimal.Decimal) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.state.players[id] = models.Player{ID: id, TeamID: teamID, Name: name, Position: position, Value: value}
	return id
}

// RemovePlayers detaches n players from a team, as if sold elsewhere.
func (s *Store) RemovePlayers(teamID uuid.UUID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.state.players {
		if n == 0 {
			return
		}
		if p.TeamID == teamID {
			delete(s.state.players, id)
			n--
		}
	}
}

// Budget returns a team's committed budget.
func (s *Store) Budget(teamID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.teams[teamID].Budget
}

// RosterSize returns a team's committed roster size.
func (s *Store) RosterSize(teamID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.rosterSize(teamID)
}

// PlayerTeam returns the team a player currently belongs to.
func (s *Store) PlayerTeam(playerID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.players[playerID].TeamID
}

// Transfer returns a committed transfer.
func (s *Store) Transfer(id uuid.UUID) (models.Transfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.state.transfers[id]
	return t, ok
}

// Events returns the committed outbox rows in insertion order.
func (s *Store) Events() []OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OutboxEvent(nil), s.state.outbox...)
}

// tx operates on a private state copy.
type tx struct {
	state *state
}

var _ transfers.TransferTx = (*tx)(nil)

func (t *tx) GetTeamSnapshot(_ context.Context, teamID uuid.UUID) (transfers.TeamSnapshot, error) {
	tm, ok := t.state.teams[teamID]
	if !ok {
		return transfers.TeamSnapshot{}, sqlutil.ErrNotFound
	}
	return transfers.TeamSnapshot{
		ID:         tm.ID,
		UserID:     tm.UserID,
		Name:       tm.Name,
		Budget:     tm.Budget,
		RosterSize: t.state.rosterSize(teamID),
	}, nil
}

func (t *tx) CountRoster(_ context.Context, teamID uuid.UUID) (int, error) {
	return t.state.rosterSize(teamID), nil
}

func (t *tx) GetTeamPlayer(_ context.Context, teamID, playerID uuid.UUID) (models.Player, error) {
	p, ok := t.state.players[playerID]
	if !ok || p.TeamID != teamID {
		return models.Player{}, sqlutil.ErrNotFound
	}
	return p, nil
}

func (t *tx) HasPendingTransfer(_ context.Context, playerID uuid.UUID) (bool, error) {
	for _, tr := range t.state.transfers {
		if tr.PlayerID == playerID && tr.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (t *tx) GetTransfer(_ context.Context, id uuid.UUID) (models.Transfer, error) {
	tr, ok := t.state.transfers[id]
	if !ok {
		return models.Transfer{}, sqlutil.ErrNotFound
	}
	return tr, nil
}

func (t *tx) GetTransferForPurchase(_ context.Context, id uuid.UUID) (transfers.PurchaseSnapshot, error) {
	tr, ok := t.state.transfers[id]
	if !ok {
		return transfers.PurchaseSnapshot{}, sqlutil.ErrNotFound
	}
	return transfers.PurchaseSnapshot{
		TransferID:       tr.ID,
		PlayerID:         tr.PlayerID,
		SellerTeamID:     tr.TeamID,
		Price:            tr.Price,
		Status:           tr.Status,
		SellerUserID:     t.state.teams[tr.TeamID].UserID,
		SellerRosterSize: t.state.rosterSize(tr.TeamID),
	}, nil
}

func (t *tx) CreateTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error) {
	pending, _ := t.HasPendingTransfer(ctx, transfer.PlayerID)
	if pending {
		return models.Transfer{}, fmt.Errorf("insert transfer: %w", sqlutil.ErrUniqueViolation)
	}
	t.state.transfers[transfer.ID] = transfer
	return transfer, nil
}

func (t *tx) DeletePendingTransfer(_ context.Context, id uuid.UUID) (bool, error) {
	tr, ok := t.state.transfers[id]
	if !ok || !tr.IsPending() {
		return false, nil
	}
	delete(t.state.transfers, id)
	return true, nil
}

func (t *tx) CompleteTransfer(_ context.Context, id, buyerTeamID uuid.UUID, completedAt time.Time) (bool, error) {
	tr, ok := t.state.transfers[id]
	if !ok || !tr.IsPending() {
		return false, nil
	}
	tr.Status = models.TransferStatusCompleted
	tr.BuyerTeamID = &buyerTeamID
	tr.CompletedAt = &completedAt
	tr.UpdatedAt = completedAt
	t.state.transfers[id] = tr
	return true, nil
}

func (t *tx) MovePlayer(_ context.Context, playerID, fromTeamID, toTeamID uuid.UUID) (bool, error) {
	p, ok := t.state.players[playerID]
	if !ok || p.TeamID != fromTeamID {
		return false, nil
	}
	p.TeamID = toTeamID
	t.state.players[playerID] = p
	return true, nil
}

func (t *tx) AdjustBudget(_ context.Context, teamID uuid.UUID, delta decimal.Decimal) error {
	tm, ok := t.state.teams[teamID]
	if !ok {
		return sqlutil.ErrNotFound
	}
	tm.Budget = tm.Budget.Add(delta)
	if tm.Budget.IsNegative() {
		return fmt.Errorf("budget of team %s would become %s: check constraint violated", teamID, tm.Budget)
	}
	t.state.teams[teamID] = tm
	return nil
}

func (t *tx) InsertOutboxEvent(_ context.Context, aggregateID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	t.state.outbox = append(t.state.outbox, OutboxEvent{AggregateID: aggregateID, EventType: eventType, Payload: data})
	return nil
}
