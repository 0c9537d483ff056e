package planning

import "errors"

// ErrNotFound is returned by Repository implementations when a row lookup
// misses; the Store wrapper translates it into apperr.NotFound.
var ErrNotFound = errors.New("planning: record not found")
