package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tutorialhub/backend/internal/repository"
)

// translateErr maps driver errors onto the repository sentinels: no rows
// becomes ErrNotFound, unique violations become field-specific conflicts.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ConflictError{Field: conflictField(pgErr.ConstraintName)}
	}
	return err
}

func conflictField(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "email"
	case strings.Contains(constraint, "username"):
		return "username"
	case strings.Contains(constraint, "slug"):
		return "slug"
	case strings.Contains(constraint, "name"):
		return "name"
	default:
		return constraint
	}
}
