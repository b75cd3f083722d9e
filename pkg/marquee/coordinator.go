package marquee

import (
	"time"

	"github.com/go-drift/marquee/pkg/errors"
	"github.com/go-drift/marquee/pkg/layout"
)

// Coordinator runs a primary marquee and a dependent one whose speed is
// taken from the primary, so rows of different widths move at the same
// visual rate.
type Coordinator struct {
	host         layout.Host
	dependentCfg Config
	fallback     time.Duration

	primary   *Marquee
	dependent *Marquee
	stopped   bool
}

// Coordinate starts primary. The dependent marquee is constructed inside the
// primary's ready callback with Speed set to the primary's resolved speed.
//
// If the primary cannot be constructed at all, the dependent is started
// immediately from its own configuration; when that has no timing either,
// fallback (or DefaultDuration when fallback is not positive) is used.
func Coordinate(host layout.Host, primary, dependent Config, fallback time.Duration) *Coordinator {
	if fallback <= 0 {
		fallback = DefaultDuration
	}
	co := &Coordinator{
		host:         host,
		dependentCfg: dependent.clone(),
		fallback:     fallback,
	}

	userReady := primary.OnReady
	primary.OnReady = func(speed, loopWidth float64) {
		if userReady != nil {
			func() {
				defer errors.Recover("marquee.Coordinate.onReady")
				userReady(speed, loopWidth)
			}()
		}
		co.startDependent(speed)
	}

	p, err := New(host, primary)
	if err != nil {
		errors.Debugf("marquee.Coordinate: primary %q not started (%v), starting %q on its own timing",
			primary.ContainerID, err, dependent.ContainerID)
		co.startDependent(0)
		return co
	}
	co.primary = p
	return co
}

func (co *Coordinator) startDependent(speed float64) {
	if co.stopped || co.dependent != nil {
		return
	}
	cfg := co.dependentCfg.clone()
	if speed > 0 {
		cfg.Speed = speed
	} else if cfg.Speed <= 0 && cfg.Duration <= 0 {
		cfg.Duration = co.fallback
	}
	d, err := New(co.host, cfg)
	if err != nil {
		return
	}
	co.dependent = d
}

// Primary returns the primary handle, or nil if it could not be started.
func (co *Coordinator) Primary() *Marquee {
	return co.primary
}

// Dependent returns the dependent handle. It is nil until the primary is
// ready, and stays nil if the dependent could not be started.
func (co *Coordinator) Dependent() *Marquee {
	return co.dependent
}

// Stop stops both marquees. It is idempotent.
func (co *Coordinator) Stop() {
	if co.stopped {
		return
	}
	co.stopped = true
	co.primary.Stop()
	co.dependent.Stop()
}
