package shared

import "errors"

// Error kinds shared by every domain.
// Domain sentinels wrap one of these so the boundary layer can translate
// them without knowing each domain's error list.
var (
	// ErrNotFound - referenced entity (or relation subject) does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict - a uniqueness constraint would be violated
	ErrConflict = errors.New("conflict")

	// ErrReferential - entity references unknown auxiliary data (genre, mpa)
	ErrReferential = errors.New("invalid reference")

	// ErrValidation - request is structurally invalid
	ErrValidation = errors.New("validation failed")
)
