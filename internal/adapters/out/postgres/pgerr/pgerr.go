// Package pgerr classifies driver errors. Failures that say nothing about
// the data (lost connections, timeouts, lock contention, server shutdown)
// are reported as ports.ErrStorageUnavailable so callers can retry later.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"fooddispatch/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// Translate wraps transient errors with ports.ErrStorageUnavailable and
// returns the rest unchanged.
func Translate(err error) error {
	if err == nil || errors.Is(err, ports.ErrStorageUnavailable) {
		return err
	}
	if IsTransient(err) {
		return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
	}
	return err
}

func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientCode(pgErr.Code)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func transientCode(code string) bool {
	if len(code) < 2 {
		return false
	}

	switch code[:2] {
	case "08", // connection exception
		"53", // insufficient resources
		"57": // operator intervention, includes query_canceled
		return true
	}

	switch code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return true
	}
	return false
}

// IsUniqueViolation reports a duplicate key.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
