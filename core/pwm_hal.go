package core

// PWMPin identifies a hardware pin capable of PWM output
type PWMPin uint32

// PWMMax is the PWM resolution ceiling (10-bit). Duty values passed to
// the driver are in [0, PWMMax]; implementations rescale to whatever
// counter width the hardware slice actually runs.
const PWMMax = 1023

// PWMDriver is the abstract PWM interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type PWMDriver interface {
	// ConfigurePWM configures a pin for hardware PWM output at the
	// given carrier period in nanoseconds. Returns the actual period
	// used (may be adjusted for hardware constraints).
	ConfigurePWM(pin PWMPin, periodNS uint64) (uint64, error)

	// SetDuty sets the PWM duty for a pin: 0 (fully off) to PWMMax
	// (fully on).
	SetDuty(pin PWMPin, value uint32) error
}

// Global singleton used by core code.
var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}
