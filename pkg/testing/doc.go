// Package testing provides deterministic test doubles for marquee hosts.
//
// # Quick Start
//
// Create a tester, add a row, start a marquee and pump frames:
//
//	func TestMyRow(t *testing.T) {
//	    tester := marqueetest.NewTesterWithT(t)
//	    tester.Host().AddRow("row", 500)
//
//	    m, err := marquee.New(tester.Host(), marquee.Config{
//	        ContainerID: "row",
//	        Duration:    5 * time.Second,
//	    })
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    tester.Host().SignalReady()
//	    tester.PumpFrames(10, 16*time.Millisecond)
//
//	    if m.Status() != marquee.StatusRunning {
//	        t.Errorf("status = %v", m.Status())
//	    }
//	}
//
// # Time
//
// The tester's [FakeClock] only moves when told to:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import marqueetest "github.com/go-drift/marquee/pkg/testing"
package testing
