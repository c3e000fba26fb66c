package outcome

import "errors"

var (
	// ErrFormat is returned when a schedule table is malformed.
	ErrFormat = errors.New("invalid schedule")
	// ErrInvalidDate is returned when a date string matches no known layout.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNoMatchingGame is returned when the backward search exceeds its bound.
	ErrNoMatchingGame = errors.New("no matching game")
	// ErrNoResult is returned when the matched game has no W/L result.
	ErrNoResult = errors.New("game has no result")
	// ErrInvalidLookback is returned for a negative lookback bound.
	ErrInvalidLookback = errors.New("invalid max lookback")
)
