//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/shiftregister"

	"ratrack/core"
)

// ShiftDisplayDriver implements the DisplayDriver interface on a pair
// of daisy-chained 74HC595 registers. The low byte drives the digit
// select lines, the high byte the segment cathodes; latching both in
// one 16-bit write keeps ghosting off adjacent digits.
type ShiftDisplayDriver struct {
	chain *shiftregister.Device
}

// NewShiftDisplayDriver wires the shift register chain.
func NewShiftDisplayDriver(latch, clock, out machine.Pin) *ShiftDisplayDriver {
	d := &ShiftDisplayDriver{
		chain: shiftregister.New(shiftregister.SIXTEEN_BITS, latch, clock, out),
	}
	d.chain.Configure()
	return d
}

// Strobe latches one digit's segment mask. A zero mask still clocks
// the chain, which the renderer relies on while the display is blank.
func (d *ShiftDisplayDriver) Strobe(position uint8, segments uint8) error {
	return d.chain.WriteMask(uint32(segments)<<8 | 1<<(position&3))
}

var _ core.DisplayDriver = (*ShiftDisplayDriver)(nil)
