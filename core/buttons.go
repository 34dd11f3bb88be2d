// Command aggregation from the four speed/direction override buttons.
package core

// Intents are the motor overrides derived from the buttons each loop
// iteration.
type Intents struct {
	Forward   bool
	Speed2x   bool
	SpeedFull bool
}

// Aggregator derives intents from the raw button levels once per loop
// iteration and raises the shared dirty flag whenever any intent
// changes. The buttons are wired active low with pull-ups, so a raw
// level of true means "not pressed".
//
// Each intent comes from a diagonal pair of buttons, so either button
// of a pair (or both held) triggers the state. The pairing also makes
// forward the default: it only drops when buttons 1 and 2 are pressed
// together. That leaves reverse unreachable from a single press; the
// wiring is reproduced as shipped rather than reinterpreted.
type Aggregator struct {
	pos  *Position
	prev Intents
}

// NewAggregator creates an aggregator raising the shared dirty flag.
// The zero previous-intent state guarantees the first poll registers
// as a change, forcing an initial output emission.
func NewAggregator(pos *Position) *Aggregator {
	return &Aggregator{pos: pos}
}

// Update derives the intents from the four raw button levels
// (true = line high = unpressed) and marks the shared state dirty if
// any of them changed since the previous cycle.
func (g *Aggregator) Update(raw1, raw2, raw3, raw4 bool) Intents {
	cur := Intents{
		Forward:   level(raw1)+level(raw2) >= 2,
		Speed2x:   level(raw2)+level(raw3) < 2,
		SpeedFull: level(raw1)+level(raw4) < 2,
	}
	if cur != g.prev {
		g.prev = cur
		g.pos.MarkDirty()
	}
	return cur
}

func level(raw bool) int {
	if raw {
		return 1
	}
	return 0
}
