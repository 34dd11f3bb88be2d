// Tracker wiring: the single-axis control pipeline.
package core

import "ratrack/protocol"

// TrackerPins groups every pin the control pipeline owns. The encoder
// A/B lines themselves are configured by target code, which routes
// their edge interrupts into Decoder.Transition.
type TrackerPins struct {
	Buttons       [4]GPIOPin // override buttons, active low with pull-ups
	EncoderButton GPIOPin    // pushbutton integrated in the rotary encoder
	Motor         DrivePins
}

// Tracker owns the per-iteration control pipeline: poll buttons,
// recompute motor output when the shared state is dirty, render the
// display unconditionally, then run due soft timers. The quadrature
// decoder runs outside the loop, in interrupt context, and talks to
// the loop only through the shared Position cell.
type Tracker struct {
	Pos *Position
	Dec *Decoder

	pins  TrackerPins
	agg   *Aggregator
	drive *Drive
	disp  *Renderer

	lastIntents Intents
}

// NewTracker configures the button inputs and motor direction outputs
// and assembles the pipeline. The PWM carrier must already be
// configured by target code (its period is a hardware constant).
func NewTracker(pins TrackerPins) (*Tracker, error) {
	gpio := MustGPIO()
	for _, b := range pins.Buttons {
		if err := gpio.ConfigureInputPullUp(b); err != nil {
			return nil, err
		}
	}
	if err := gpio.ConfigureInputPullUp(pins.EncoderButton); err != nil {
		return nil, err
	}
	if err := gpio.ConfigureOutput(pins.Motor.Forward); err != nil {
		return nil, err
	}
	if err := gpio.ConfigureOutput(pins.Motor.Reverse); err != nil {
		return nil, err
	}

	pos := &Position{}
	t := &Tracker{
		Pos:   pos,
		Dec:   NewDecoder(pos),
		pins:  pins,
		agg:   NewAggregator(pos),
		drive: NewDrive(pos, pins.Motor),
		disp:  NewRenderer(),
	}
	return t, nil
}

// Poll runs one main-loop iteration. It never blocks; the caller
// decides the loop pacing.
func (t *Tracker) Poll() error {
	gpio := MustGPIO()

	in := t.agg.Update(
		gpio.ReadPin(t.pins.Buttons[0]),
		gpio.ReadPin(t.pins.Buttons[1]),
		gpio.ReadPin(t.pins.Buttons[2]),
		gpio.ReadPin(t.pins.Buttons[3]),
	)
	t.lastIntents = in

	if err := t.drive.Update(in); err != nil {
		return err
	}

	// Pushbutton is active low like the others.
	t.disp.CheckToggle(!gpio.ReadPin(t.pins.EncoderButton), Now())

	if err := t.disp.Render(t.Pos.Fraction()); err != nil {
		return err
	}

	DispatchTimers(Now())
	return nil
}

// Status snapshots the tracker state for a telemetry frame.
func (t *Tracker) Status() protocol.Status {
	return protocol.Status{
		Count:     uint32(t.Pos.Count()),
		Duty:      t.drive.LastDuty(),
		Forward:   t.drive.LastForward(),
		Speed2x:   t.lastIntents.Speed2x,
		SpeedFull: t.lastIntents.SpeedFull,
		DisplayOn: t.disp.On(),
		Uptime:    Now(),
	}
}
