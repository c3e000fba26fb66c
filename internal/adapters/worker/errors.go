package worker

import "errors"

// Sentinel kinds for pool errors.
var (
	ErrClosed  = errors.New("queue closed")
	ErrStopped = errors.New("worker pool stopped")
)
