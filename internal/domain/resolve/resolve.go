// Package resolve maps a matched surface string to the roster identity it
// refers to.
package resolve

import (
	"slices"
	"sync"

	"github.com/okian/rollcall/internal/domain/roster"
	"github.com/okian/rollcall/pkg/metrics"
)

type resolution struct {
	entry roster.Entry
	ok    bool
}

// Resolver resolves surface strings against a roster. It is safe for
// concurrent use.
type Resolver struct {
	entries []roster.Entry

	mu   sync.Mutex
	memo map[string]resolution
}

// New creates a resolver over idx.
func New(idx *roster.Index) *Resolver {
	return &Resolver{
		entries: idx.Entries(),
		memo:    make(map[string]resolution),
	}
}

// Resolve returns the entry surface refers to. An exact match on a display,
// first or last name wins at once. Otherwise the last entry whose short forms
// or nicknames contain surface wins. Comparison is exact and case-sensitive.
func (r *Resolver) Resolve(surface string) (roster.Entry, bool) {
	r.mu.Lock()
	res, cached := r.memo[surface]
	r.mu.Unlock()

	if !cached {
		res = r.scan(surface)
		r.mu.Lock()
		r.memo[surface] = res
		r.mu.Unlock()
	}
	metrics.RecordResolution(res.ok)
	return res.entry, res.ok
}

func (r *Resolver) scan(surface string) resolution {
	var tentative resolution
	for _, e := range r.entries {
		if surface == e.Name || slices.Contains(e.First, surface) || slices.Contains(e.Last, surface) {
			return resolution{entry: e, ok: true}
		}
		if slices.Contains(e.FirstShort, surface) ||
			slices.Contains(e.LastShort, surface) ||
			slices.Contains(e.Nicknames, surface) {
			tentative = resolution{entry: e, ok: true}
		}
	}
	return tentative
}

// Name returns the display name surface resolves to.
func (r *Resolver) Name(surface string) (string, bool) {
	e, ok := r.Resolve(surface)
	return e.Name, ok
}
