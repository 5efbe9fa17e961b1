package utils

import (
	"runtime"
	"testing"
	"time"
)

// LeakCheck verifies that a test does not leave extra goroutines behind.
// Call it before exercising the code under test; the returned function is
// usually deferred and compares the goroutine count once things settle.
type LeakCheck struct {
	t       *testing.T
	baseline int
	slack    int
	settle   time.Duration
}

// NewLeakCheck samples the current goroutine count as the baseline.
func NewLeakCheck(t *testing.T) *LeakCheck {
	time.Sleep(100 * time.Millisecond)
	return &LeakCheck{
		t:        t,
		baseline: runtime.NumGoroutine(),
		settle:   200 * time.Millisecond,
	}
}

// WithSlack permits up to n goroutines of growth before failing.
func (lc *LeakCheck) WithSlack(n int) *LeakCheck {
	lc.slack = n
	return lc
}

// Verify fails the test if the goroutine count grew beyond the baseline
// plus slack. It samples a few times and keeps the lowest reading, since
// goroutines may still be winding down when it runs.
func (lc *LeakCheck) Verify() {
	time.Sleep(lc.settle)

	final := runtime.NumGoroutine()
	for i := 0; i < 2; i++ {
		time.Sleep(50 * time.Millisecond)
		if n := runtime.NumGoroutine(); n < final {
			final = n
		}
	}

	grown := final - lc.baseline
	if grown > lc.slack {
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		lc.t.Errorf("goroutine leak: baseline %d, final %d (slack %d)\n%s",
			lc.baseline, final, lc.slack, buf[:n])
	}
}
