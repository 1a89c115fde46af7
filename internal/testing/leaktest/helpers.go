// Package leaktest checks that background workers let go of their
// goroutines once stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// DefaultTimeout bounds how long a check waits for goroutines to exit
	DefaultTimeout = 2 * time.Second

	pollInterval = 10 * time.Millisecond
)

// Check records the current goroutine count. The returned func fails t if the
// count does not come back to at most the recorded value plus tolerance
// within DefaultTimeout.
//
//	defer leaktest.Check(t, 0)()
func Check(t testing.TB, tolerance int) func() {
	t.Helper()
	before := runtime.NumGoroutine()

	return func() {
		t.Helper()
		target := before + tolerance
		if n, ok := waitFor(target, DefaultTimeout); !ok {
			t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", before, n, tolerance)
		}
	}
}

// WaitForGoroutines waits until at most target goroutines run
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()
	if n, ok := waitFor(target, timeout); !ok {
		t.Errorf("timeout waiting for goroutines: current=%d target=%d", n, target)
	}
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
