package docs

import "errors"

// ErrNotFound is returned by Repository implementations when a lookup
// misses (no snapshot yet, no document for that month, ...).
var ErrNotFound = errors.New("docs: record not found")
