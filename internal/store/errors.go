package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrUnavailable indicates the backing medium could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)
