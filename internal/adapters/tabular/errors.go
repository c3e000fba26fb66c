package tabular

import (
	"errors"
	"strings"
)

// ErrFormat is the kind shared by every FormatError.
var ErrFormat = errors.New("format error")

// FormatError reports a table whose shape or values do not match what the
// loader expects.
type FormatError struct {
	File    string
	Reason  string
	Columns []string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.File != "" {
		b.WriteString(" in ")
		b.WriteString(e.File)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if len(e.Columns) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Columns, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// Is matches ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
