package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock indicates a purchase asked for more units than a
	// product has left.
	ErrInsufficientStock = errors.New("insufficient stock")
)
