package repository

import "errors"

// ErrNotFound is the sentinel wrapped by every repository when a lookup
// matches no row; callers test with errors.Is.
var ErrNotFound = errors.New("not found")
