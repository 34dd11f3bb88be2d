// Display rendering: duty cycle as a 4-digit percentage with two
// implied decimal places, software-multiplexed one digit per loop
// iteration.
package core

// segDigits holds the 7-segment masks in gfedcba order.
var segDigits = [10]uint8{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

// segDP is the decimal point segment, lit on digit 2 to separate the
// integer and fractional percent digits.
const segDP = 0x80

// DebounceUS is the hold-off window for the display toggle button.
const DebounceUS = 500000

// Digits splits a duty fraction in [0, 1] into four percentage digits
// with two implied decimals (0.1599 -> 1 5 9 9). Values that would
// need a fifth digit saturate at 99.99.
func Digits(fraction float64) [4]uint8 {
	v := int(fraction*10000 + 0.5)
	if v < 0 {
		v = 0
	} else if v > 9999 {
		v = 9999
	}
	return [4]uint8{
		uint8(v / 1000),
		uint8(v / 100 % 10),
		uint8(v / 10 % 10),
		uint8(v % 10),
	}
}

// Frame returns the segment masks for the four digit positions. When
// the display is off, every mask is zero; the renderer still strobes
// the chain so the multiplex timing holds.
func Frame(fraction float64, on bool) [4]uint8 {
	var f [4]uint8
	if !on {
		return f
	}
	d := Digits(fraction)
	for i, v := range d {
		f[i] = segDigits[v]
	}
	f[1] |= segDP
	return f
}

// Renderer owns the display-on flag and the multiplex scan position.
// Render runs once per loop iteration regardless of the dirty flag.
type Renderer struct {
	on         bool
	scan       uint8
	lastToggle uint32
	havePress  bool
}

// NewRenderer creates a renderer with the display initially on.
func NewRenderer() *Renderer {
	return &Renderer{on: true}
}

// On reports whether the display currently shows digits.
func (r *Renderer) On() bool {
	return r.on
}

// CheckToggle samples the encoder pushbutton level and flips the
// display flag, ignoring presses that land within the debounce window
// of the previous toggle. This is a plain level-based time debounce,
// not a state machine: a held button re-toggles once per window.
func (r *Renderer) CheckToggle(pressed bool, now uint32) {
	if !pressed {
		return
	}
	if r.havePress && now-r.lastToggle < TicksFromUS(DebounceUS) {
		return
	}
	r.on = !r.on
	r.lastToggle = now
	r.havePress = true
	DebugPrintln("display toggle at " + itoa(int(TicksToUS(now))) + "us")
}

// Render strobes the next digit position with the segment pattern for
// the given duty fraction.
func (r *Renderer) Render(fraction float64) error {
	frame := Frame(fraction, r.on)
	i := r.scan
	r.scan = (r.scan + 1) & 3
	return MustDisplay().Strobe(i, frame[i])
}
