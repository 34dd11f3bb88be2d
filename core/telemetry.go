package core

import "ratrack/protocol"

// StatusIntervalUS is how often a status frame is queued for the
// serial link.
const StatusIntervalUS = 250000

// Telemetry periodically snapshots the tracker into framed status
// messages on the shared output buffer. The target's main loop flushes
// that buffer to the serial port.
type Telemetry struct {
	framer  *protocol.Framer
	tracker *Tracker
	timer   SoftTimer
}

// NewTelemetry creates the telemetry reporter.
func NewTelemetry(framer *protocol.Framer, tracker *Tracker) *Telemetry {
	return &Telemetry{framer: framer, tracker: tracker}
}

// Start schedules the first report one interval from now.
func (t *Telemetry) Start(now uint32) {
	t.timer.WakeAt = now + TicksFromUS(StatusIntervalUS)
	t.timer.Fire = t.fire
	ScheduleTimer(&t.timer)
}

func (t *Telemetry) fire(tm *SoftTimer) TimerAction {
	s := t.tracker.Status()
	t.framer.Emit(func(out protocol.OutputBuffer) {
		protocol.EncodeStatus(out, s)
	})
	tm.WakeAt += TicksFromUS(StatusIntervalUS)
	return TimerRearm
}
