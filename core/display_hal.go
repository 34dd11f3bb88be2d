package core

// DisplayDriver is the abstract interface to the shift-register chain
// behind the 4-digit 7-segment display. One digit position is lit at a
// time; the renderer strobes positions round-robin from the main loop.
type DisplayDriver interface {
	// Strobe latches the segment mask for one digit position (0..3,
	// left to right), leaving the other positions dark until their
	// next strobe. A zero mask must still clock and latch the chain
	// so that multiplex timing stays constant while blanked.
	Strobe(position uint8, segments uint8) error
}

// Global singleton used by core code.
var displayDriver DisplayDriver

// SetDisplayDriver is called by target-specific code to register its driver.
func SetDisplayDriver(d DisplayDriver) {
	displayDriver = d
}

// MustDisplay returns the configured driver or panics if missing.
func MustDisplay() DisplayDriver {
	if displayDriver == nil {
		panic("display driver not configured")
	}
	return displayDriver
}
