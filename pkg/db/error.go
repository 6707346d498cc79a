package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

// Storage error taxonomy. Repositories translate raw driver errors into
// these sentinels; callers match with errors.Is.
var (
	ErrNotFound            = errors.New("not_found")
	ErrConstraintViolation = errors.New("constraint_violation")
	ErrStorageUnavailable  = errors.New("storage_unavailable")
	ErrDimensionMismatch   = errors.New("dimension_mismatch")
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

func isNotNullErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// PostgreSQL (error code 23502)
	if strings.Contains(msg, "violates not-null constraint") {
		return true
	}
	// SQLite (error code 1299)
	return strings.Contains(msg, "NOT NULL constraint failed")
}

func isUnavailableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}

// Translate maps a raw storage error onto the taxonomy while keeping the
// original message for diagnostics. Errors with no mapping pass through
// untouched.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case IsDuplicateKeyErr(err), isNotNullErr(err):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	case isUnavailableErr(err):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	default:
		return err
	}
}
