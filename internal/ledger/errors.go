package ledger

import "errors"

// ErrNotFound is returned by the in-memory Repository when a row lookup
// misses; the postgres Repository returns pgx.ErrNoRows instead. The Store
// wrapper translates either into apperr.NotFound.
var ErrNotFound = errors.New("ledger: transaction not found")
