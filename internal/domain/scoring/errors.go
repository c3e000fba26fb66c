package scoring

import "errors"

// ErrShapeMismatch is returned when the two matrices differ in identities or
// row count.
var ErrShapeMismatch = errors.New("matrix shape mismatch")
