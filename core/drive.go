// Motor output driver: direction pins plus PWM duty.
package core

// DrivePins groups the motor controller outputs.
type DrivePins struct {
	Forward GPIOPin
	Reverse GPIOPin
	PWM     PWMPin
}

// Drive recomputes and emits the motor output when the shared state is
// dirty, and holds the previous output otherwise. It keeps no state of
// its own beyond the last emitted values, which are retained for
// telemetry.
type Drive struct {
	pos  *Position
	pins DrivePins

	lastDuty    uint32
	lastForward bool
}

// NewDrive creates the output driver for the given pins.
func NewDrive(pos *Position, pins DrivePins) *Drive {
	return &Drive{pos: pos, pins: pins, lastForward: true}
}

// Update emits direction and duty if the dirty flag is set; otherwise
// it is a no-op and the hardware holds its previous output.
//
// The flag is cleared before the count is read. An encoder interrupt
// that lands mid-computation re-sets it, so the output computed from
// the slightly stale count is corrected on the next iteration rather
// than lost.
func (d *Drive) Update(in Intents) error {
	if !d.pos.TakeDirty() {
		return nil
	}

	gpio := MustGPIO()
	if in.Forward {
		if err := gpio.SetPin(d.pins.Forward, true); err != nil {
			return err
		}
		if err := gpio.SetPin(d.pins.Reverse, false); err != nil {
			return err
		}
	} else {
		if err := gpio.SetPin(d.pins.Forward, false); err != nil {
			return err
		}
		if err := gpio.SetPin(d.pins.Reverse, true); err != nil {
			return err
		}
	}

	duty := uint32(d.pos.Count()) * PWMMax / CountLimit
	if in.Speed2x {
		// 2x wins over full when both derive true.
		duty *= 2
		if duty > PWMMax {
			duty = PWMMax
		}
	} else if in.SpeedFull {
		duty = PWMMax
	}

	if err := MustPWM().SetDuty(d.pins.PWM, duty); err != nil {
		return err
	}
	d.lastDuty = duty
	d.lastForward = in.Forward
	return nil
}

// LastDuty returns the most recently emitted duty value.
func (d *Drive) LastDuty() uint32 {
	return d.lastDuty
}

// LastForward reports the most recently emitted direction.
func (d *Drive) LastForward() bool {
	return d.lastForward
}
