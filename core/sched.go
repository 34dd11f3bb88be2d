package core

// SoftTimer represents a scheduled event on the main loop's soft
// timer list (telemetry reports and similar low-rate work).
type SoftTimer struct {
	WakeAt uint32
	Fire   func(*SoftTimer) TimerAction
	next   *SoftTimer
}

// TimerAction is the result of a timer handler.
type TimerAction uint8

const (
	TimerDone TimerAction = iota
	TimerRearm
)

var timerList *SoftTimer

// ScheduleTimer adds a timer to the schedule, sorted by wake time.
func ScheduleTimer(t *SoftTimer) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	insertTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeAt
func insertTimer(t *SoftTimer) {
	if timerList == nil || t.WakeAt < timerList.WakeAt {
		t.next = timerList
		timerList = t
		return
	}

	cur := timerList
	for cur.next != nil && cur.next.WakeAt < t.WakeAt {
		cur = cur.next
	}

	t.next = cur.next
	cur.next = t
}

// DispatchTimers fires every timer whose wake time has passed. Handlers
// returning TimerRearm are re-inserted with the WakeAt they set.
func DispatchTimers(now uint32) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	for timerList != nil && timerList.WakeAt <= now {
		t := timerList
		timerList = t.next
		t.next = nil

		if t.Fire(t) == TimerRearm {
			insertTimer(t)
		}
	}
}

// ResetTimers drops all scheduled timers (used by tests).
func ResetTimers() {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	timerList = nil
}
