//go:build rp2040

package main

import (
	"machine"

	"ratrack/core"
)

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RP2040PWMDriver implements the PWMDriver interface for RP2040
// using the chip's 8 hardware PWM slices with 2 channels each.
type RP2040PWMDriver struct {
	// Key: slice number (0-7), Value: configured period in nanoseconds
	slices map[uint8]uint64

	// Key: pin number, Value: PWM channel
	channels map[uint32]uint8

	// Key: slice number (0-7), Value: PWM peripheral
	peripherals map[uint8]pwmPeripheral
}

// NewRP2040PWMDriver creates a new RP2040 PWM driver
func NewRP2040PWMDriver() *RP2040PWMDriver {
	return &RP2040PWMDriver{
		slices:      make(map[uint8]uint64),
		channels:    make(map[uint32]uint8),
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// ConfigurePWM configures a pin for hardware PWM output with the given
// carrier period in nanoseconds, returning the period actually set.
func (d *RP2040PWMDriver) ConfigurePWM(pin core.PWMPin, periodNS uint64) (uint64, error) {
	pinNum := uint32(pin)

	// RP2040: GPIO pin N maps to:
	//   Slice: (N >> 1) & 0x7
	//   Channel: N & 1 (even=A, odd=B)
	sliceNum := uint8((pinNum >> 1) & 0x7)

	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		pwm = d.getPWMPeripheral(sliceNum)
		d.peripherals[sliceNum] = pwm
	}

	err := pwm.Configure(machine.PWMConfig{
		Period: periodNS,
	})
	if err != nil {
		return 0, err
	}

	machinePin := machine.Pin(pinNum)
	channel, err := pwm.Channel(machinePin)
	if err != nil {
		return 0, err
	}

	d.slices[sliceNum] = periodNS
	d.channels[pinNum] = channel

	return periodNS, nil
}

// SetDuty sets the PWM duty cycle for a pin.
// value: 0 (fully off) to core.PWMMax (fully on).
func (d *RP2040PWMDriver) SetDuty(pin core.PWMPin, value uint32) error {
	pinNum := uint32(pin)

	channel, exists := d.channels[pinNum]
	if !exists {
		// Pin not configured
		return nil
	}

	sliceNum := uint8((pinNum >> 1) & 0x7)
	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		return nil
	}

	if value > core.PWMMax {
		value = core.PWMMax
	}

	// Scale the 0..1023 value to the slice counter wrap.
	// 64-bit math: top can be large enough to overflow uint32.
	top := pwm.Top()
	dutyCycle := uint32(uint64(value) * uint64(top) / core.PWMMax)

	pwm.Set(channel, dutyCycle)

	return nil
}

// getPWMPeripheral returns the PWM peripheral for a given slice number.
// TinyGo defines PWM0-PWM7 as globals of the unexported *pwmGroup type,
// so they are returned via the pwmPeripheral interface.
func (d *RP2040PWMDriver) getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		// Unreachable with proper masking
		return machine.PWM0
	}
}
