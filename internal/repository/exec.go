package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type execType int

const (
	execInsert execType = iota
	execUpdate
	execDelete
)

// namedExecWithCheck runs a named statement and, for updates and deletes,
// reports ErrNotFound when no row matched.
func namedExecWithCheck(ctx context.Context, db sqlx.ExtContext, op, query string, t execType, arg any) error {
	result, err := sqlx.NamedExecContext(ctx, db, query, arg)
	if err != nil {
		return translate(op, err)
	}
	if t == execInsert {
		return nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, db *sqlx.DB, table, id string) error {
	result, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return translate("delete from "+table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete from %s: %w", table, ErrNotFound)
	}
	return nil
}
