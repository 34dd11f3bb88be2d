//go:build rp2040

package main

import (
	"machine"

	"ratrack/core"
)

// Board wiring. All pins are RP2040 GPIO numbers.
const (
	// Rotary encoder: two quadrature lines plus the integrated
	// pushbutton that toggles the display.
	pinEncoderA      = machine.GP2
	pinEncoderB      = machine.GP3
	pinEncoderButton = core.GPIOPin(4)

	// Override buttons, active low with pull-ups.
	pinButton1 = core.GPIOPin(10)
	pinButton2 = core.GPIOPin(11)
	pinButton3 = core.GPIOPin(12)
	pinButton4 = core.GPIOPin(13)

	// Motor driver: direction pair and the PWM input.
	pinMotorForward = core.GPIOPin(6)
	pinMotorReverse = core.GPIOPin(7)
	pinMotorPWM     = core.PWMPin(8)

	// 74HC595 pair behind the 4-digit display.
	pinDisplayLatch = machine.GP16
	pinDisplayClock = machine.GP17
	pinDisplayData  = machine.GP18
)

// motorPeriodNS is the PWM carrier period: 60Hz, slow enough for the
// gearmotor winding and well inside the slice divider range.
const motorPeriodNS = 16666667

var trackerPins = core.TrackerPins{
	Buttons:       [4]core.GPIOPin{pinButton1, pinButton2, pinButton3, pinButton4},
	EncoderButton: pinEncoderButton,
	Motor: core.DrivePins{
		Forward: pinMotorForward,
		Reverse: pinMotorReverse,
		PWM:     pinMotorPWM,
	},
}
