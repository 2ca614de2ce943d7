package gradebook

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrMissingEntry indicates a lookup matched no row for the given natural
// key and scope. Callers may recover by creating the entry.
var ErrMissingEntry = errors.New("missing entry")

// ErrInvalidEntry indicates a mutation violated a structural invariant
// (uniqueness, referential integrity). The surrounding transaction has been
// rolled back, so the store is unchanged.
var ErrInvalidEntry = errors.New("invalid entry")

func missingEntryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingEntry, fmt.Sprintf(format, args...))
}

func invalidEntryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEntry, fmt.Sprintf(format, args...))
}

// wrapMutationErr maps integrity failures reported by the store onto
// ErrInvalidEntry and passes everything else through untouched.
func wrapMutationErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return err
}
