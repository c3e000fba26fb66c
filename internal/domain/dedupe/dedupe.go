// Package dedupe tracks which comments a pass has already seen so repeated
// (thread, comment) keys are processed once.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/rollcall/internal/domain/model"
)

// Deduper records seen comment keys. The first occurrence of a key wins.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key model.CommentKey) bool

	// Seen reports whether key was recorded without recording it.
	Seen(ctx context.Context, key model.CommentKey) bool

	Size() int64
}

// inMemoryDeduper keeps every key for the lifetime of the pass. Evicting a
// key would let a later duplicate through, so there is no size limit.
type inMemoryDeduper struct {
	mu       sync.RWMutex
	seen     map[model.CommentKey]struct{}
	capacity int
	size     atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	if d.capacity < 0 {
		d.capacity = 0
	}
	d.seen = make(map[model.CommentKey]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key model.CommentKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Seen(_ context.Context, key model.CommentKey) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, exists := d.seen[key]
	return exists
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
