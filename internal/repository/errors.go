package repository

import (
	"errors"
	"strings"

	"luxurystay/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc sqlite errors are not translated by the gorm dialect.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps driver errors onto domain sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isDuplicateKey(err):
		return domain.ErrConflict
	default:
		return err
	}
}
