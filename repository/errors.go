package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"relaybridge/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes this layer cares about
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// connections_route_key is the four-tuple uniqueness constraint; hitting it
// means a concurrent identical CreateConnection won the race.
const connectionRouteConstraint = "connections_route_key"

// translateError maps low-level store errors into the service taxonomy so
// services can match with errors.Is without knowing about postgres.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			if pgErr.ConstraintName == connectionRouteConstraint {
				return fmt.Errorf("%w: %s", service.ErrDuplicateConnection, pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s", service.ErrConflict, pgErr.ConstraintName)
		case pgCodeForeignKeyViolation:
			return fmt.Errorf("%w: %s", service.ErrForeignKeyViolation, pgErr.ConstraintName)
		}
		// Class 08 covers connection exceptions
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return fmt.Errorf("%w: %s", service.ErrStoreUnavailable, pgErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", service.ErrStoreUnavailable, err)
	}

	return err
}
