// Package sequence hands out monotonically increasing identifiers.
package sequence

import "sync/atomic"

type Generator interface {
	Next() int64
	// Advance moves the sequence so that Next never returns a value <= floor.
	Advance(floor int64)
	Current() int64
}

type Atomic struct {
	last atomic.Int64
}

// NewAtomic returns a generator whose first value is start.
func NewAtomic(start int64) *Atomic {
	g := &Atomic{}
	g.last.Store(start - 1)
	return g
}

func (g *Atomic) Next() int64 {
	return g.last.Add(1)
}

func (g *Atomic) Advance(floor int64) {
	for {
		cur := g.last.Load()
		if cur >= floor {
			return
		}
		if g.last.CompareAndSwap(cur, floor) {
			return
		}
	}
}

func (g *Atomic) Current() int64 {
	return g.last.Load()
}
