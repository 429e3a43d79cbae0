package catalog

import "errors"

var (
	// ErrMissingID is returned when a catalog, dataset or service has no @id.
	ErrMissingID = errors.New("catalog: missing @id")

	// ErrMissingType is returned when a dataset or service has no type tags.
	ErrMissingType = errors.New("catalog: missing type")

	// ErrInvalidVersion is returned when a version is not a semantic version.
	ErrInvalidVersion = errors.New("catalog: invalid version")
)
