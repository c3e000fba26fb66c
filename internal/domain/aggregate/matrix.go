// Package aggregate turns mention records into comment-level presence
// matrices and per-thread frequency tables.
package aggregate

import (
	"github.com/okian/rollcall/internal/domain/model"
)

// Matrix is a comments × identities table of 0/1 cells, stored one column
// per identity.
type Matrix struct {
	identities []string
	colIndex   map[string]int
	rows       []model.Comment
	cols       [][]uint8
}

// NewMatrix returns an all-zero matrix with the given identity columns and
// comment rows.
func NewMatrix(identities []string, rows []model.Comment) *Matrix {
	m := &Matrix{
		identities: append([]string(nil), identities...),
		colIndex:   make(map[string]int, len(identities)),
		rows:       append([]model.Comment(nil), rows...),
		cols:       make([][]uint8, len(identities)),
	}
	for i, name := range identities {
		if _, ok := m.colIndex[name]; !ok {
			m.colIndex[name] = i
		}
		m.cols[i] = make([]uint8, len(rows))
	}
	return m
}

// Identities returns the column names in order.
func (m *Matrix) Identities() []string { return append([]string(nil), m.identities...) }

// Rows returns the comments in row order.
func (m *Matrix) Rows() []model.Comment { return append([]model.Comment(nil), m.rows...) }

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

// Width returns the number of identity columns.
func (m *Matrix) Width() int { return len(m.identities) }

// Cell returns the value at (row, col).
func (m *Matrix) Cell(row, col int) uint8 { return m.cols[col][row] }

// Get returns the value at row for the named identity, 0 when unknown.
func (m *Matrix) Get(row int, identity string) uint8 {
	col, ok := m.colIndex[identity]
	if !ok {
		return 0
	}
	return m.cols[col][row]
}

// Mark sets (row, col) to 1.
func (m *Matrix) Mark(row, col int) { m.cols[col][row] = 1 }

// Column returns a copy of the named identity's column.
func (m *Matrix) Column(identity string) ([]uint8, bool) {
	col, ok := m.colIndex[identity]
	if !ok {
		return nil, false
	}
	return append([]uint8(nil), m.cols[col]...), true
}

// ColumnAt returns a copy of column col.
func (m *Matrix) ColumnAt(col int) []uint8 { return append([]uint8(nil), m.cols[col]...) }

// Thread returns the rows of one thread, in order, as a new matrix.
func (m *Matrix) Thread(threadID int64) *Matrix {
	var idx []int
	var rows []model.Comment
	for i, c := range m.rows {
		if c.ThreadID == threadID {
			idx = append(idx, i)
			rows = append(rows, c)
		}
	}
	out := NewMatrix(m.identities, rows)
	for col := range m.cols {
		for j, i := range idx {
			out.cols[col][j] = m.cols[col][i]
		}
	}
	return out
}
