package core

// TickRate is the system tick frequency in Hz. The tick counter is fed
// from the target's hardware timer (a 1MHz microsecond counter on the
// RP2040), so one tick is one microsecond.
const TickRate = 1000000

// Now returns the current system time in ticks.
func Now() uint32 {
	return getSystemTicks()
}

// SetNow updates the system tick counter. Target code calls this from
// the main loop with the hardware timer value; tests call it directly.
func SetNow(ticks uint32) {
	setSystemTicks(ticks)
}

// TicksFromUS converts microseconds to ticks.
func TicksFromUS(us uint32) uint32 {
	return us * (TickRate / 1000000)
}

// TicksToUS converts ticks to microseconds.
func TicksToUS(ticks uint32) uint32 {
	return ticks / (TickRate / 1000000)
}
