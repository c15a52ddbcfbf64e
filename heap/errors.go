package heap

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when an allocation cannot fit under the
	// configured limit even after a full collection.
	ErrOutOfMemory = errors.New("not enough memory")

	// ErrClosed is returned by Alloc after Close.
	ErrClosed = errors.New("heap closed")
)

// OutOfMemoryError describes a failed allocation.
//
// The sentinel ErrOutOfMemory can be matched via errors.Is.
type OutOfMemoryError struct {
	Tag       Tag
	Requested int
	InUse     int
	Limit     int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("not enough memory: %s of %d bytes with %d of %d bytes in use", e.Tag, e.Requested, e.InUse, e.Limit)
}

func (e *OutOfMemoryError) Unwrap() error { return ErrOutOfMemory }
