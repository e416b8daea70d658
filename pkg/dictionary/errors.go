package dictionary

import "errors"

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV text nor a snapshot.
	ErrUnsupportedFormat = errors.New("unsupported code table format")

	// ErrBadSnapshot is returned when a snapshot has an unknown version or is corrupt.
	ErrBadSnapshot = errors.New("invalid code table snapshot")
)
