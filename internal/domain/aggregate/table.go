package aggregate

import (
	"github.com/okian/rollcall/internal/domain/model"
)

// Surface is one distinct matched string and how often it occurred.
type Surface struct {
	Surface  string
	Category string
	Mentions int
	Identity string // empty when the surface did not resolve
}

// Table is a frequency table of surface strings with their resolved identity.
type Table struct {
	ThreadID   int64 // zero for a dataset-wide table
	Surfaces   []Surface
	identities []string
	known      map[string]bool
	counts     map[string]int
}

// ByThread builds the frequency table for one thread. Surfaces keep
// first-seen order and each is resolved once.
func ByThread(threadID int64, mentions []model.Mention, r Resolver, identities []string) *Table {
	t := build(mentions, r, identities, func(m model.Mention) bool { return m.ThreadID == threadID })
	t.ThreadID = threadID
	return t
}

// Totals builds the frequency table over every thread.
func Totals(mentions []model.Mention, r Resolver, identities []string) *Table {
	return build(mentions, r, identities, func(model.Mention) bool { return true })
}

func build(mentions []model.Mention, r Resolver, identities []string, keep func(model.Mention) bool) *Table {
	t := &Table{
		identities: append([]string(nil), identities...),
		known:      make(map[string]bool, len(identities)),
		counts:     make(map[string]int),
	}
	for _, name := range identities {
		t.known[name] = true
	}

	pos := make(map[string]int)
	for _, m := range mentions {
		if m.IsMarker() || !keep(m) {
			continue
		}
		if i, ok := pos[m.Surface]; ok {
			t.Surfaces[i].Mentions++
			continue
		}
		pos[m.Surface] = len(t.Surfaces)
		t.Surfaces = append(t.Surfaces, Surface{Surface: m.Surface, Category: m.Category, Mentions: 1})
	}

	for i := range t.Surfaces {
		name, ok := r.Name(t.Surfaces[i].Surface)
		if !ok || !t.known[name] {
			continue
		}
		t.Surfaces[i].Identity = name
		t.counts[name] += t.Surfaces[i].Mentions
	}
	return t
}

// Identities returns the identity columns in order.
func (t *Table) Identities() []string { return append([]string(nil), t.identities...) }

// Present reports whether any surface in the table resolved to name.
func (t *Table) Present(name string) bool {
	_, ok := t.counts[name]
	return ok
}

// IdentityMentions returns the summed frequency of surfaces resolving to name.
func (t *Table) IdentityMentions(name string) int { return t.counts[name] }
