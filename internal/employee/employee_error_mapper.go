package employee

import (
	"errors"
	"strings"

	employeeerrors "employee-management/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isDuplicateKey recognizes a unique constraint violation from either the
// gorm error translator, pgx, or a raw driver message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "unique constraint failed")
}

// mapRepositoryError turns a storage failure into the feature error clients
// understand, wrapping anything else with op.
func mapRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	// email is the only unique column besides the primary key
	if isDuplicateKey(err) {
		return employeeerrors.ErrEmployeeEmailExists
	}

	return wrapError(op, err)
}
