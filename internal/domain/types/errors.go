package types

import "errors"

// Errors shared by report providers and the API that serves them.
var (
	ErrNotFound = errors.New("not found")
	ErrNoReport = errors.New("no report published")
)
