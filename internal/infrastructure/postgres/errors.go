package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
)

// PostgreSQL error code for a unique constraint violation.
const uniqueViolation = "23505"

// writeErr maps an insert/update failure to a domain error: a unique
// constraint violation becomes ErrDuplicate, anything else is wrapped with
// the operation name.
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
