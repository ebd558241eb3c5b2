package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist, or exists
// under a different trip than the one claimed.
var ErrNotFound = errors.New("not found")
