package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate maps SQLSTATE 23505.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced maps SQLSTATE 23503.
	ErrReferenced = errors.New("record is referenced by another record")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	// A malformed uuid in a lookup behaves as a miss.
	pqInvalidTextRepresentation = "22P02"
)

// translate maps driver errors onto the package sentinels and wraps the rest
// with the failed operation.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, ErrReferenced, pqErr.Constraint)
		case pqInvalidTextRepresentation:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
