package roster

import "errors"

var (
	// ErrFormat is returned when the roster table is malformed.
	ErrFormat = errors.New("invalid roster")
	// ErrDuplicateIdentity is returned when two rows share a display name.
	ErrDuplicateIdentity = errors.New("duplicate roster identity")
)
