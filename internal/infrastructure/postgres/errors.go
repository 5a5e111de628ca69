package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shoprates/ratings-review-api/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// translate maps pgx errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrDuplicate
	}
	return err
}
