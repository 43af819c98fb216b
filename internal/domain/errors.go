package domain

import "errors"

// Sentinel errors shared across the domain. Specific not-found errors wrap ErrNotFound.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
