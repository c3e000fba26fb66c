package service

import "errors"

// Sentinel errors returned by the pipeline service.
var (
	ErrUnknownThread = errors.New("thread has no metadata")
	ErrMissingInput  = errors.New("missing input")
)
