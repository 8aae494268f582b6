package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX es el subconjunto común de pgxpool.Pool y pgx.Tx que usan los repositorios.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner abstrae pgxpool.Pool para las operaciones que necesitan transacción.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ErrDuplicateEmail indica que ya existe un usuario con ese email (violación de unicidad).
var ErrDuplicateEmail = errors.New("duplicate email")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
