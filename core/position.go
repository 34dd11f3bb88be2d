// Shared position state between the quadrature decoder (interrupt
// context) and the main polling loop.
package core

import "sync/atomic"

// CountLimit bounds the encoder count. The encoder's natural full
// scale is 1023; the limit is doubled so that its two-pulses-per-detent
// behavior is absorbed without external debounce hardware.
const CountLimit = 2046

// Position is the only state shared between interrupt context and the
// main loop: the bounded count and the dirty flag. Both fit within the
// machine's atomic read/write width, so no lock is taken on either
// side of the boundary.
type Position struct {
	count int32  // atomic, always in [0, CountLimit]
	dirty uint32 // atomic bool
}

// Apply adds delta to the count and clamps the result to
// [0, CountLimit]. Only the decoder calls Apply; the main loop is a
// reader. The count is stored clamped, so a reader can never observe
// an out-of-range value.
func (p *Position) Apply(delta int32) {
	c := atomic.LoadInt32(&p.count) + delta
	if c < 0 {
		c = 0
	} else if c > CountLimit {
		c = CountLimit
	}
	atomic.StoreInt32(&p.count, c)
}

// Count returns the current bounded count.
func (p *Position) Count() int32 {
	return atomic.LoadInt32(&p.count)
}

// Fraction returns the count as a fraction of full scale, in [0, 1].
func (p *Position) Fraction() float64 {
	return float64(p.Count()) / float64(CountLimit)
}

// MarkDirty flags that an input affecting motor output has changed.
// Called by the decoder on every valid transition and by the command
// aggregator on any intent change.
func (p *Position) MarkDirty() {
	atomic.StoreUint32(&p.dirty, 1)
}

// TakeDirty atomically clears the dirty flag and reports whether it
// was set. The output driver must call TakeDirty before reading the
// count: an interrupt that lands during recomputation re-sets the
// flag, so its update is deferred to the next loop iteration instead
// of being lost.
func (p *Position) TakeDirty() bool {
	return atomic.SwapUint32(&p.dirty, 0) != 0
}
