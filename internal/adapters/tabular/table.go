// Package tabular loads and writes the flat CSV tables exchanged at the
// process boundary. Every loader validates its header row before any value is
// read so malformed input is rejected before the pipeline starts.
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	dirPermission  = 0o750
	filePermission = 0o640
)

// Table is an in-memory CSV table with a single header row.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// New builds a table from a header and rows. Duplicate header names resolve
// to the left-most column.
func New(name string, header []string, rows [][]string) *Table {
	t := &Table{Name: name, Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = trimHeader(h)
		if _, ok := t.index[h]; !ok {
			t.index[h] = i
		}
	}
	return t
}

func trimHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// Read parses CSV from r. The first record is the header.
func Read(ctx context.Context, name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{File: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		rows = append(rows, rec)
	}
	return New(name, header, rows), nil
}

// ReadFile opens path and parses it with Read. The table is named after the
// file's base name.
func ReadFile(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(ctx, filepath.Base(path), f)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether col is a header.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require fails with a FormatError naming every missing column. When all of
// the columns appear together in a later row, the error says so.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if row := t.headerRow(cols); row > 0 {
		return &FormatError{
			File:    t.Name,
			Reason:  fmt.Sprintf("header found in row %d instead of the first row", row+1),
			Columns: missing,
		}
	}
	return &FormatError{File: t.Name, Reason: "missing required columns", Columns: missing}
}

func (t *Table) headerRow(cols []string) int {
	for i, row := range t.Rows {
		present := make(map[string]bool, len(row))
		for _, v := range row {
			present[strings.TrimSpace(v)] = true
		}
		all := true
		for _, c := range cols {
			if !present[c] {
				all = false
				break
			}
		}
		if all {
			return i + 1
		}
	}
	return 0
}

// Value returns the trimmed cell at (row, col), or "" when the column or the
// cell is absent.
func (t *Table) Value(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Int parses the cell at (row, col) as an integer. Whole floats such as "12.0"
// are accepted; anything else is a FormatError.
func (t *Table) Int(row int, col string) (int64, error) {
	v := t.Value(row, col)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
		return int64(f), nil
	}
	return 0, &FormatError{
		File:    t.Name,
		Reason:  fmt.Sprintf("row %d: %q is not an integer", row+2, v),
		Columns: []string{col},
	}
}

// Write encodes header and rows as CSV.
func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile writes header and rows to path, creating parent directories.
func WriteFile(path string, header []string, rows [][]string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := Write(f, header, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
