package isoline

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of goroutines.
// Wait blocks until exactly parties callers have arrived, then releases all
// of them together and resets for the next phase.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation uint64
}

// NewBarrier creates a barrier released by parties arrivals.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		panic("isoline: barrier needs at least one party")
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties returns the arrival count the barrier was created with.
func (b *Barrier) Parties() int { return b.parties }

// Wait blocks the caller until all parties have called Wait for the current
// generation. Writes made before Wait are visible to every party after it.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
