// Quadrature decoder for the tracking-rate rotary encoder.
package core

// quadDelta is the direction truth table, indexed by abOld<<2 | abNew
// where bit 1 is encoder pin A and bit 0 is pin B. Entries of +1
// follow the Gray sequence 00 -> 01 -> 11 -> 10, entries of -1 are its
// reverse, and everything else (no change, or both bits flipping at
// once) contributes nothing.
var quadDelta = [16]int8{
	0, +1, -1, 0,
	-1, 0, 0, +1,
	+1, 0, 0, -1,
	0, -1, +1, 0,
}

// Decoder turns raw encoder pin transitions into bounded count
// updates. Transition is invoked from interrupt context on every edge
// of either pin; all other fields are owned by the interrupt handler
// and must not be touched by the main loop.
type Decoder struct {
	pos   *Position
	abOld uint8
}

// NewDecoder creates a decoder writing to the shared position cell.
func NewDecoder(pos *Position) *Decoder {
	return &Decoder{pos: pos}
}

// Seed primes the previous pin state from the current pin levels.
// Call once at startup, before interrupts are enabled, so the first
// real edge is decoded against the true resting state.
func (d *Decoder) Seed(a, b bool) {
	d.abOld = encoderBits(a, b)
}

// Transition consumes the new levels of encoder pins A and B. A
// transition where both bits changed cannot come from a rotating
// encoder and is dropped as contact noise; a valid single-bit change
// moves the count one step in the decoded direction, clamped to the
// count bounds, and marks the shared state dirty even when clamping
// left the count unchanged.
//
// Transition performs no blocking operation and completes in bounded
// time, so it is safe to run in interrupt context concurrently with
// the polling loop.
func (d *Decoder) Transition(a, b bool) {
	abNew := encoderBits(a, b)
	criterion := abNew ^ d.abOld
	if criterion != 0b01 && criterion != 0b10 {
		return
	}
	delta := quadDelta[d.abOld<<2|abNew]
	d.abOld = abNew
	d.pos.Apply(int32(delta))
	d.pos.MarkDirty()
}

func encoderBits(a, b bool) uint8 {
	var ab uint8
	if a {
		ab |= 0b10
	}
	if b {
		ab |= 0b01
	}
	return ab
}
