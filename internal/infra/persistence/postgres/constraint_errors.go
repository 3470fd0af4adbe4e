package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return "", ""
}

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	if code, _ := pgErrorCode(err); code != "" {
		return code == pgNotNullViolation
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, pgNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	code, _ := pgErrorCode(err)

	return code == pgCheckViolation
}

// violatesConstraintOn reports whether err names a constraint or index mentioning column.
// Used to tell apart several unique keys on one insert (product slug vs variant sku).
func violatesConstraintOn(err error, column string) bool {
	if _, constraint := pgErrorCode(err); constraint != "" {
		return strings.Contains(constraint, column)
	}

	return strings.Contains(strings.ToLower(err.Error()), column)
}
