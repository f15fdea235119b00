package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrSchema marks malformed SQL or a failed script.
	ErrSchema = errors.New("schema error")
	// ErrParameterMismatch marks a statement whose bound argument count differs
	// from its placeholder count.
	ErrParameterMismatch = errors.New("parameter mismatch")
	// ErrConstraintViolation marks a uniqueness, check or foreign key failure.
	ErrConstraintViolation = errors.New("constraint violation")
)

// classify tags driver errors with one of the package sentinels. The driver
// error stays in the chain so callers can still inspect sqlite3.Error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSchema) || errors.Is(err, ErrParameterMismatch) || errors.Is(err, ErrConstraintViolation) {
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		case sqlite3.ErrError:
			return fmt.Errorf("%w: %w", ErrSchema, err)
		case sqlite3.ErrRange:
			return fmt.Errorf("%w: %w", ErrParameterMismatch, err)
		}
	}
	return err
}
