// Package dberr maps gorm errors onto the errs taxonomy. Anything it does not
// recognize is returned unchanged and treated as an infrastructure failure
// further up.
package dberr

import (
	"errors"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// Translate converts err for a statement on the row identified by paramName
// and value. It requires the connection to be opened with TranslateError.
func Translate(err error, paramName string, value any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewObjectNotFoundError(paramName, value)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, value, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	default:
		return err
	}
}

// CheckAffected turns an update or delete that matched no row into a not
// found error.
func CheckAffected(result *gorm.DB, paramName string, value any) error {
	if result.Error != nil {
		return Translate(result.Error, paramName, value)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(paramName, value)
	}
	return nil
}
