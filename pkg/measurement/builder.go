package measurement

import (
	"sync"

	"github.com/philipparndt/gosnap/pkg/snap"
)

// Builder collects snap points pairwise. Every second point completes a
// measurement, which is appended to the list.
type Builder struct {
	mu           sync.Mutex
	pending      *snap.Result
	measurements []Measurement
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add records a snap point and returns the measurement it completes, if any
func (b *Builder) Add(point snap.Result) (Measurement, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		b.pending = &point
		return Measurement{}, false
	}

	m := Build(*b.pending, point)
	b.pending = nil
	b.measurements = append(b.measurements, m)
	return m, true
}

// Pending returns the first point of an incomplete measurement
func (b *Builder) Pending() (snap.Result, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return snap.Result{}, false
	}
	return *b.pending, true
}

// Measurements returns a copy of all completed measurements in creation order
func (b *Builder) Measurements() []Measurement {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Measurement, len(b.measurements))
	copy(out, b.measurements)
	return out
}

// Cancel drops a pending first point
func (b *Builder) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// Clear drops all measurements and any pending point
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	b.measurements = nil
}
