package database

import (
	"errors"
	"fmt"

	"github.com/example/tutorhub/internal/apperr"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// storeFailure classifies a driver error. Constraint violations carry the
// violated constraint class in the message.
func storeFailure(err error) *apperr.Error {
	appErr := apperr.StoreFailure(err)
	if name := constraintName(err); name != "" {
		appErr.Message = fmt.Sprintf("%s: %s", name, err.Error())
	}
	return appErr
}

func constraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "23" {
			return pqErr.Code.Name()
		}
		return ""
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return "foreign_key_violation"
		case sqlite3.ErrConstraintNotNull:
			return "not_null_violation"
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return "unique_violation"
		default:
			return "integrity_constraint_violation"
		}
	}
	return ""
}
