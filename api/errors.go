// File: api/errors.go
// Package api defines common error values for the channel library.
// License: Apache-2.0

package api

import "errors"

// Common errors used across the library.
var (
	// ErrClosed indicates a send on a channel with no live producers.
	ErrClosed = errors.New("channel is closed")

	// ErrInvalidCapacity indicates a buffer capacity below the minimum of 2.
	ErrInvalidCapacity = errors.New("capacity must be at least 2")

	// ErrDriverClosed indicates the poll driver has been shut down.
	ErrDriverClosed = errors.New("driver is closed")
)
