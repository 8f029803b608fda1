package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound             = errors.New("запись не найдена")
	ErrConflict             = errors.New("запись с такими данными уже существует")
	ErrInvalidReference     = errors.New("ссылка на несуществующую запись")
	ErrCategoryNotFound     = errors.New("одна или несколько категорий не найдены")
	ErrCategoryTypeMismatch = errors.New("категории должны совпадать по типу с транзакцией")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapError оборачивает ошибку pgx сообщением и переводит известные коды
// PostgreSQL в ошибки пакета.
func wrapError(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", msg, ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", msg, ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
