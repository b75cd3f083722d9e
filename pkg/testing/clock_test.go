package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestTester_PumpFramesAdvancesSchedulerClock(t *testing.T) {
	tester := NewTesterWithT(t)
	start := tester.Clock().Now()

	var seen time.Time
	tester.Host().Scheduler().RequestFrame(func(now time.Time) { seen = now })
	tester.PumpFrames(3, 10*time.Millisecond)

	if got := seen.Sub(start); got != 10*time.Millisecond {
		t.Errorf("first frame saw +%v, want +10ms", got)
	}
	if got := tester.Clock().Now().Sub(start); got != 30*time.Millisecond {
		t.Errorf("clock advanced %v, want 30ms", got)
	}
}

func TestTester_PumpUntil(t *testing.T) {
	tester := NewTesterWithT(t)
	frames := 0
	var tick func(time.Time)
	tick = func(time.Time) {
		frames++
		tester.Host().Scheduler().RequestFrame(tick)
	}
	tester.Host().Scheduler().RequestFrame(tick)

	if err := tester.PumpUntil(func() bool { return frames >= 5 }, 10); err != nil {
		t.Fatalf("PumpUntil: %v", err)
	}
	if err := tester.PumpUntil(func() bool { return false }, 3); err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}

func TestFakeHost_ListenerAccounting(t *testing.T) {
	tester := NewTesterWithT(t)
	host := tester.Host()
	row := host.AddRow("row", 10)

	cancelReady := host.WhenReady(func() {})
	cancelResize, ok := host.ObserveResize(row, func() {})
	if !ok {
		t.Fatal("resize observation should be supported by default")
	}
	cancelHover := host.OnHover(row, func() {}, func() {})
	if host.Listeners() != 3 {
		t.Fatalf("Listeners() = %d, want 3", host.Listeners())
	}

	cancelReady()
	cancelResize()
	cancelHover()
	cancelHover()
	if host.Listeners() != 0 {
		t.Errorf("Listeners() = %d after cancel, want 0", host.Listeners())
	}
	if host.Cancellations() != 3 {
		t.Errorf("Cancellations() = %d, want 3", host.Cancellations())
	}
}

func TestFakeHost_ResizeFallsBackToWindow(t *testing.T) {
	tester := NewTesterWithT(t)
	host := tester.Host()
	row := host.AddRow("row", 10)
	host.SetResizeObservation(false)

	if _, ok := host.ObserveResize(row, func() {}); ok {
		t.Fatal("expected ok == false")
	}
	fired := 0
	host.OnWindowResize(func() { fired++ })
	host.Resize("row")
	if fired != 1 {
		t.Errorf("window listener fired %d times, want 1", fired)
	}
}
