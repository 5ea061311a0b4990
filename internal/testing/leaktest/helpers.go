// Package leaktest provides a goroutine leak checker for tests that spin up
// pools, servers or background workers.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// GoroutineChecker records the goroutine count at creation and compares it
// against the count at Check time.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a checker. Call it before starting the code
// under test.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines outlived the code
// under test.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	runtime.Gosched()
	time.Sleep(50 * time.Millisecond)
	runtime.GC()
	time.Sleep(50 * time.Millisecond)

	after := runtime.NumGoroutine()
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}
