package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrFlushFailed = errors.New("metrics flush failed")
)
