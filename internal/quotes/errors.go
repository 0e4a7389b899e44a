package quotes

import "errors"

// ErrNotFound is returned when no quote request exists for the given id.
var ErrNotFound = errors.New("quote request not found")
