package sqlutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsolationLevel is the transaction isolation requested from Postgres.
type IsolationLevel string

const (
	ReadCommitted  IsolationLevel = IsolationLevel(pgx.ReadCommitted)
	RepeatableRead IsolationLevel = IsolationLevel(pgx.RepeatableRead)
	Serializable   IsolationLevel = IsolationLevel(pgx.Serializable)
)

var (
	// ErrNotFound is returned when a query expected a row and got none.
	ErrNotFound = errors.New("record not found")
	// ErrSerialization marks a transaction aborted by Postgres because it could
	// not be serialized against a concurrent one. The whole unit may be retried.
	ErrSerialization = errors.New("serialization failure")
	// ErrUniqueViolation marks an insert rejected by a unique constraint.
	ErrUniqueViolation = errors.New("unique violation")
)

// SQLSTATE codes we classify.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Run executes fn inside a pgx.Tx opened at the given isolation level.
// If fn returns an error the tx rolls back, else it commits. Returned errors
// are classified so callers can test for ErrSerialization and friends.
func Run[T any](
	ctx context.Context,
	db TxBeginner,
	level IsolationLevel,
	newQueries func(pgx.Tx) *T,
	fn func(q *T) error,
) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.TxIsoLevel(level)}) // BEGIN
	if err != nil {
		return Classify(fmt.Errorf("begin transaction: %w", err))
	}
	q := newQueries(tx) // bind sqlc Queries to this tx
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx) // ROLLBACK
		return Classify(err)
	}
	if err := tx.Commit(ctx); err != nil { // COMMIT
		return Classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Classify tags err with the package sentinel matching its cause. Errors that
// are already classified or unknown are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSerialization) || errors.Is(err, ErrUniqueViolation) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %w", ErrSerialization, err)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		}
	}
	return err
}

// ConstraintName returns the constraint reported by Postgres, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
