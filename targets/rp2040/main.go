//go:build rp2040

package main

import (
	"machine"
	"time"

	"ratrack/core"
	"ratrack/protocol"
)

var (
	tracker      *core.Tracker
	outputBuffer *protocol.ScratchOutput

	// Debug counters
	loopErrors  uint32
	writeErrors uint32
)

func main() {
	// Disable the watchdog on boot to clear any previous state.
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// No command channel exists to flip the debug gate at runtime, so
	// it is opened here; init failures below would otherwise be silent.
	core.SetDebugWriter(func(s string) {
		println(s)
	})
	core.SetDebugEnabled(true)

	// Register hardware drivers before any core code runs.
	core.SetGPIODriver(NewRPGPIODriver())
	core.SetPWMDriver(NewRP2040PWMDriver())
	core.SetDisplayDriver(NewShiftDisplayDriver(
		pinDisplayLatch, pinDisplayClock, pinDisplayData))

	// The PWM carrier is a hardware constant, configured once here.
	if _, err := core.MustPWM().ConfigurePWM(pinMotorPWM, motorPeriodNS); err != nil {
		core.DebugPrintln("pwm configure failed: " + err.Error())
		return
	}

	tracker, err = core.NewTracker(trackerPins)
	if err != nil {
		core.DebugPrintln("tracker init failed: " + err.Error())
		return
	}

	initEncoder()

	// Telemetry frames accumulate here between serial flushes.
	outputBuffer = protocol.NewScratchOutput()
	telemetry := core.NewTelemetry(protocol.NewFramer(outputBuffer), tracker)

	UpdateSystemTime()
	telemetry.Start(core.Now())

	for {
		// Recover from panics so a bad iteration cannot take the
		// motor drive down with it.
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopErrors++
					outputBuffer.Reset()
				}
			}()

			UpdateSystemTime()

			if err := tracker.Poll(); err != nil {
				loopErrors++
			}

			flushSerial()
		}()

		// Loop pacing: ~1ms per iteration gives a 250Hz refresh per
		// display digit and debounce resolution well under 500ms.
		time.Sleep(1 * time.Millisecond)
	}
}

// initEncoder configures the quadrature inputs and routes their edge
// interrupts into the decoder. The decoder is seeded from the live pin
// levels before interrupts are enabled so the first real edge decodes
// as a single-bit transition.
func initEncoder() {
	pinEncoderA.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pinEncoderB.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	tracker.Dec.Seed(pinEncoderA.Get(), pinEncoderB.Get())

	handler := func(machine.Pin) {
		tracker.Dec.Transition(pinEncoderA.Get(), pinEncoderB.Get())
	}
	pinEncoderA.SetInterrupt(machine.PinToggle, handler)
	pinEncoderB.SetInterrupt(machine.PinToggle, handler)
}

// flushSerial drains pending telemetry frames to the USB serial port,
// handling partial writes. On write failure (host detached) the buffer
// is dropped rather than retried; the next frame is 250ms away.
func flushSerial() {
	result := outputBuffer.Result()
	if len(result) == 0 {
		return
	}

	written := 0
	for written < len(result) {
		n, err := machine.Serial.Write(result[written:])
		if err != nil || n == 0 {
			writeErrors++
			outputBuffer.Reset()
			return
		}
		written += n
	}
	outputBuffer.Reset()
}
