package lookup

import "errors"

// ErrNilTable is returned when a service is built or swapped without a table.
var ErrNilTable = errors.New("code table required")
