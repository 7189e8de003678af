package procgen

import "time"

// Timer is a repeating fixed-interval accumulator. Tick it once per frame and
// read JustFinished in the same frame.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
	finished int
}

func NewTimer(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

func (t *Timer) Tick(dt time.Duration) {
	t.finished = 0
	if t.interval <= 0 || dt <= 0 {
		return
	}
	t.elapsed += dt
	if t.elapsed >= t.interval {
		t.finished = int(t.elapsed / t.interval)
		t.elapsed %= t.interval
	}
}

// JustFinished reports whether the last Tick crossed the interval.
func (t *Timer) JustFinished() bool {
	return t != nil && t.finished > 0
}

// TimesFinished is how many intervals the last Tick crossed.
func (t *Timer) TimesFinished() int {
	if t == nil {
		return 0
	}
	return t.finished
}

func (t *Timer) Interval() time.Duration {
	return t.interval
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = 0
}
