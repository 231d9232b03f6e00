package exam

import "fmt"

// TimerMode selects the counting direction.
type TimerMode int

const (
	// CountUp measures elapsed time with no budget.
	CountUp TimerMode = iota
	// CountDown measures remaining time against a budget and keeps counting
	// into negative overtime after expiry.
	CountDown
)

// Timer is the exam clock. It holds no tick source of its own: the owner
// drives it by calling Tick once per second (the exam screen does this from
// its tea.Tick loop, tests call it directly), so time is fully deterministic.
type Timer struct {
	mode         TimerMode
	limitSeconds int
	// seconds is elapsed time in CountUp mode and remaining time in
	// CountDown mode. Remaining may go negative in overtime.
	seconds        int
	paused         bool
	active         bool
	expiryNotified bool
}

// Start resets and arms the timer. limitMinutes = 0 selects count-up from
// zero; limitMinutes > 0 selects count-down from the full budget. Every call
// fully resets the one-shot expiry guard.
func (t *Timer) Start(limitMinutes int) {
	if limitMinutes < 0 {
		limitMinutes = 0
	}
	t.limitSeconds = limitMinutes * 60
	if limitMinutes > 0 {
		t.mode = CountDown
		t.seconds = t.limitSeconds
	} else {
		t.mode = CountUp
		t.seconds = 0
	}
	t.paused = false
	t.active = true
	t.expiryNotified = false
}

// Stop halts the timer until the next Start.
func (t *Timer) Stop() {
	t.active = false
}

// SetPaused suspends or resumes ticking without resetting the clock value.
// No-op while inactive.
func (t *Timer) SetPaused(paused bool) {
	if !t.active {
		return
	}
	t.paused = paused
}

// Tick advances the clock by one second. It returns true exactly once per
// count-down run: at the tick where remaining time reaches zero. Ticks while
// inactive or paused are silent no-ops, as are ticks after expiry has already
// been notified.
func (t *Timer) Tick() bool {
	if !t.active || t.paused {
		return false
	}
	if t.mode == CountUp {
		t.seconds++
		return false
	}
	t.seconds--
	if t.seconds == 0 && !t.expiryNotified {
		t.expiryNotified = true
		return true
	}
	return false
}

// Mode returns the counting direction selected by the last Start.
func (t *Timer) Mode() TimerMode { return t.mode }

// Active reports whether the timer is armed.
func (t *Timer) Active() bool { return t.active }

// Paused reports whether ticking is suspended.
func (t *Timer) Paused() bool { return t.paused }

// Seconds returns elapsed seconds in count-up mode and remaining seconds in
// count-down mode (negative in overtime).
func (t *Timer) Seconds() int { return t.seconds }

// LimitSeconds returns the count-down budget, 0 in count-up mode.
func (t *Timer) LimitSeconds() int { return t.limitSeconds }

// Overtime reports whether a count-down run has gone past its budget.
func (t *Timer) Overtime() bool {
	return t.mode == CountDown && t.seconds < 0
}

// FormatSeconds renders a signed second count as [-]m:ss (or [-]h:mm:ss past
// an hour).
func FormatSeconds(s int) string {
	sign := ""
	if s < 0 {
		sign = "-"
		s = -s
	}
	if s >= 3600 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, s/3600, (s/60)%60, s%60)
	}
	return fmt.Sprintf("%s%d:%02d", sign, s/60, s%60)
}
