package repository

import "errors"

// Sentinel errors implementations translate driver failures into, so
// services never inspect pgx internals.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate row")
)
