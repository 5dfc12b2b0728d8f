package search

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates an invalid search configuration (bad worker
// count, empty target set, or a missing keyspace). It is reported before any
// work starts; there is no retry.
var ErrConfiguration = errors.New("invalid search configuration")

// WorkerError reports a worker that terminated abnormally before reaching a
// terminal state. It is fatal to the whole search: the chunk range it carries
// identifies the part of the keyspace whose coverage is incomplete.
type WorkerError struct {
	WorkerID int
	Chunk    Chunk
	Err      error
}

// Error implements the error interface.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed on chunk [%d, %d): %v", e.WorkerID, e.Chunk.Start, e.Chunk.End, e.Err)
}

// Unwrap returns the underlying worker failure.
func (e *WorkerError) Unwrap() error {
	return e.Err
}
