package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
// Pool methods acquire and release a connection per call, so no
// connection outlives the query that borrowed it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

// UniqueViolationError is returned when an insert hits a unique constraint.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

func asUniqueViolation(err error) (*UniqueViolationError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}, true
	}
	return nil, false
}

// boundedContext applies the per-query timeout when one is configured.
func boundedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
