// Package repository provides the data access layer for the POS backend.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a uniqueness
	// constraint. The storage constraint is the authoritative arbiter for
	// email, google_id, sku, code and category name uniqueness; callers
	// treat this the same as a failed pre-check.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidReference is returned when a write names a related record
	// that does not exist, such as a branch or product pointing at an
	// unknown store. Handlers render it as a validation failure.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// translate maps gorm errors to the repository sentinels so that services
// never depend on gorm directly. Requires gorm.Config{TranslateError: true}
// on the session for dialect-independent duplicate detection.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	default:
		return err
	}
}
