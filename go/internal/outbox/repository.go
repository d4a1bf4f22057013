package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mohab-Rageh/flairs-tech-assignment/go/internal/outbox/db"
	"github.com/google/uuid"
)

// Repository reads and acknowledges outbox rows over database/sql
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new outbox repository
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{queries: db.New(conn)}
}

var _ Store = (*Repository)(nil)

// FetchUnsent returns up to limit unsent events, oldest first
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	events := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = OutboxEvent{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		}
	}
	return events, nil
}

// FetchByID returns an unsent event, or ErrAlreadySent
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadySent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	return &OutboxEvent{
		ID:          row.ID,
		AggregateID: row.AggregateID,
		EventType:   row.EventType,
		Payload:     row.Payload,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// MarkSent stamps sent_at on an event
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event sent: %w", err)
	}
	return nil
}
