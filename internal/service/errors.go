package service

import (
	"errors"

	"github.com/whitesgr03/local-inventory/internal/repository"
)

// The catalog's user-facing error taxonomy. The surrounding HTTP layer
// maps these to responses; anything else is a server failure.
var (
	// ErrNotFound means the identity does not resolve to a non-retired
	// record.
	ErrNotFound = errors.New("record not found")

	// ErrDraft means the operation targeted a record still inside its
	// provisional window. Surfaced as a redirect back to the record,
	// never as an error page.
	ErrDraft = errors.New("record is still provisional")

	// ErrNameConflict means the name is already carried by another
	// non-retired record.
	ErrNameConflict = errors.New("name already in use")

	// ErrInvalidCategory means the product references a category that
	// does not resolve.
	ErrInvalidCategory = errors.New("category does not exist")

	// ErrInvalidImage means the uploaded image failed validation.
	ErrInvalidImage = errors.New("invalid image")

	// ErrHasDependents means a category delete is blocked by products
	// still referencing it.
	ErrHasDependents = errors.New("category still has products")

	// ErrAssetMissing flags a product whose image asset could not be
	// found during reconciliation.
	ErrAssetMissing = errors.New("asset missing for product")
)

// mapRepoError translates persistence-boundary errors into the
// service taxonomy. Unrecognized errors pass through as store failures.
func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	var constraintErr *repository.UniqueConstraintError
	if errors.As(err, &constraintErr) {
		return ErrNameConflict
	}
	return err
}
