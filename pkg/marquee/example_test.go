package marquee_test

import (
	"fmt"
	"time"

	"github.com/go-drift/marquee/pkg/marquee"
	marqueetest "github.com/go-drift/marquee/pkg/testing"
)

func ExampleNew() {
	tester := marqueetest.NewTester()
	defer tester.Cleanup()
	tester.Host().AddRow("banner", 400, 600)

	m, err := marquee.New(tester.Host(), marquee.Config{
		ContainerID: "banner",
		Duration:    10 * time.Second,
		OnReady: func(speed, loopWidth float64) {
			fmt.Printf("loop %.0f at %.0f/s\n", loopWidth, speed)
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer m.Stop()

	tester.Host().SignalReady()
	tester.PumpFrames(4, 250*time.Millisecond)
	fmt.Printf("offset %.0f\n", m.Offset())
	// Output:
	// loop 500 at 50/s
	// offset -25
}

func ExampleCoordinate() {
	tester := marqueetest.NewTester()
	defer tester.Cleanup()
	tester.Host().AddRow("name", 2000)
	tester.Host().AddRow("projects", 350)

	co := marquee.Coordinate(tester.Host(),
		marquee.Config{ContainerID: "name", Duration: 20 * time.Second},
		marquee.Config{ContainerID: "projects", Direction: marquee.Reverse},
		0,
	)
	defer co.Stop()

	tester.Host().SignalReady()
	tester.PumpFrames(4, 16*time.Millisecond)
	fmt.Printf("primary %.0f/s, dependent %.0f/s\n", co.Primary().Speed(), co.Dependent().Speed())
	// Output:
	// primary 100/s, dependent 100/s
}
