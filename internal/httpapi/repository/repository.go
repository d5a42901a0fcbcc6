package repository

import "errors"

// ErrNotFound indicates the requested record does not exist. Both the
// in-memory and the gorm-backed implementations return it so callers
// never have to know which backend they are talking to.
var ErrNotFound = errors.New("record not found")
