// Package dedupe tracks which assessment submissions have already been
// scored so a batch scores each submission at most once.
package dedupe

import (
	"context"
	"sync"
)

// DefaultMaxSize is the capacity used when WithMaxSize is not given.
const DefaultMaxSize = 10000

// Deduper records seen submission IDs.
type Deduper interface {
	// SeenAndRecord reports whether id was seen before and records it if not.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a later submission with the same ID is scored.
	// It is used when scoring the first submission failed.
	Unrecord(ctx context.Context, id string)

	Size() int
}

// inMemoryDeduper keeps IDs in a map plus an insertion-ordered ring used for
// FIFO eviction in bounded mode.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // ring of IDs in insertion order, bounded mode only
	start   int      // index of the oldest entry in order
	maxSize int
}

// NewInMemoryDeduper creates a deduper. It is safe for concurrent use.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 {
		if len(d.order) == d.maxSize {
			delete(d.seen, d.order[d.start])
			d.order[d.start] = id
			d.start = (d.start + 1) % d.maxSize
		} else {
			d.order = append(d.order, id)
		}
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	if d.maxSize <= 0 {
		return
	}
	// Rebuild the ring without id, oldest first.
	kept := make([]string, 0, len(d.order))
	for i := range d.order {
		v := d.order[(d.start+i)%len(d.order)]
		if v != id {
			kept = append(kept, v)
		}
	}
	d.order = kept
	d.start = 0
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
