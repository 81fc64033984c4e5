package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/revdict/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// Context errors are wrapped but keep their identity. Constraint violations
// become ErrDataIntegrity; every other failure is ErrIO.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", // unique_violation
			"23503", // foreign_key_violation
			"23502", // not_null_violation
			"23514": // check_violation
			return fmt.Errorf("%s %s: %w: %s", entity, id, domain.ErrDataIntegrity, pgErr.Message)
		}
	}

	// Everything else is a storage failure.
	return fmt.Errorf("%s %s: %w: %w", entity, id, domain.ErrIO, err)
}
