// Package roster holds the read-only index of people a dataset can mention,
// together with every surface form each of them goes by.
package roster

import (
	"fmt"
	"strings"
)

// Column names of the roster table.
const (
	ColPlayer       = "Player"
	ColNicknames    = "Nicknames"
	ColFirst        = "First"
	ColLast         = "Last"
	ColFirstShort   = "First Short"
	ColLastShort    = "Last Short"
	ColPos          = "Pos"
	ColRace         = "Race"
	ColAnnualSalary = "Annual Salary"
	ColSeasonsSpent = "Seasons Spent"
)

var requiredColumns = []string{
	ColPlayer, ColNicknames, ColFirst, ColLast, ColFirstShort, ColLastShort, ColPos, ColRace,
}

// managementRoles are the positions reported in the management summaries.
var managementRoles = map[string]bool{
	"Coach":     true,
	"GM":        true,
	"Owner":     true,
	"President": true,
}

// Entry is one roster identity.
type Entry struct {
	Name         string // display name and identity key
	Role         string
	Race         string
	First        []string
	Last         []string
	FirstShort   []string
	LastShort    []string
	Nicknames    []string
	AnnualSalary string
	SeasonsSpent string
}

// IsManagement reports whether the entry's role is a management position.
func (e Entry) IsManagement() bool { return IsManagementRole(e.Role) }

// IsManagementRole reports whether role is Coach, GM, Owner or President.
func IsManagementRole(role string) bool { return managementRoles[role] }

// Table is the subset of a loaded CSV table the parser reads.
type Table interface {
	Require(cols ...string) error
	Has(col string) bool
	Len() int
	Value(row int, col string) string
}

// Index is the ordered, read-only set of roster entries.
type Index struct {
	entries []Entry
	byName  map[string]int
}

// New builds an index from entries in the given order. Blank surface forms are
// dropped; a blank or repeated display name is rejected.
func New(entries ...Entry) (*Index, error) {
	idx := &Index{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no display name", ErrFormat, i+1)
		}
		if _, dup := idx.byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateIdentity, e.Name)
		}
		e.First = clean(e.First)
		e.Last = clean(e.Last)
		e.FirstShort = clean(e.FirstShort)
		e.LastShort = clean(e.LastShort)
		e.Nicknames = clean(e.Nicknames)
		idx.byName[e.Name] = len(idx.entries)
		idx.entries = append(idx.entries, e)
	}
	return idx, nil
}

// Parse reads a roster table. Multi-valued cells are comma separated.
func Parse(t Table) (*Index, error) {
	if err := t.Require(requiredColumns...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	entries := make([]Entry, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		entries = append(entries, Entry{
			Name:         t.Value(row, ColPlayer),
			Role:         t.Value(row, ColPos),
			Race:         t.Value(row, ColRace),
			First:        Split(t.Value(row, ColFirst)),
			Last:         Split(t.Value(row, ColLast)),
			FirstShort:   Split(t.Value(row, ColFirstShort)),
			LastShort:    Split(t.Value(row, ColLastShort)),
			Nicknames:    Split(t.Value(row, ColNicknames)),
			AnnualSalary: t.Value(row, ColAnnualSalary),
			SeasonsSpent: t.Value(row, ColSeasonsSpent),
		})
	}
	return New(entries...)
}

// Split splits a comma separated cell into trimmed, non-blank parts.
func Split(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	return clean(strings.Split(cell, ","))
}

func clean(forms []string) []string {
	var out []string
	for _, f := range forms {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of identities.
func (x *Index) Len() int { return len(x.entries) }

// Entries returns the entries in roster order.
func (x *Index) Entries() []Entry {
	out := make([]Entry, len(x.entries))
	copy(out, x.entries)
	return out
}

// Names returns the display names in roster order.
func (x *Index) Names() []string {
	out := make([]string, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.Name
	}
	return out
}

// Lookup returns the entry with the given display name.
func (x *Index) Lookup(name string) (Entry, bool) {
	i, ok := x.byName[name]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// Management returns the management entries in roster order.
func (x *Index) Management() []Entry {
	var out []Entry
	for _, e := range x.entries {
		if e.IsManagement() {
			out = append(out, e)
		}
	}
	return out
}
