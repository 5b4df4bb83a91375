// Package seismic is for seismic wavefronts and arrival times on top of package geod.
package seismic

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/GeoNet/wavefront/internal/geod"
)

// Phase is a seismic body wave.
type Phase string

const (
	P Phase = "P"
	S Phase = "S"
)

// crustal velocities km/s
var velocity = map[Phase]float64{
	P: 6.10,
	S: 3.55,
}

// Velocity returns the velocity of p in km/s or zero for an unknown phase.
func (p Phase) Velocity() float64 {
	return velocity[p]
}

// ParsePhase returns the Phase for s e.g., "p" or "S".
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := velocity[p]; !ok {
		return "", fmt.Errorf("unknown phase: %s", s)
	}
	return p, nil
}

// Radius returns the distance in km travelled by p in elapsed.
func Radius(elapsed time.Duration, p Phase) float64 {
	return elapsed.Seconds() * p.Velocity()
}

// Wave returns the wavefront for p around the origin of r, elapsed after the origin time.
func Wave(r *geod.Ring, elapsed time.Duration, p Phase) (geod.WavePoints, error) {
	if p.Velocity() == 0.0 {
		return nil, fmt.Errorf("unknown phase: %s", p)
	}

	return r.Wavefront(Radius(elapsed, p))
}

// Event is an earthquake hypocentre.
type Event struct {
	Origin geod.Point
	Depth  float64 // km
	Time   time.Time
}

// Hypocentral returns the straight line distance in km from the hypocentre to site on the surface.
func (ev Event) Hypocentral(e *geod.Ellipsoid, site geod.Point) (float64, error) {
	s, err := e.Inverse(ev.Origin, site)
	if err != nil {
		return 0.0, err
	}

	return math.Hypot(s.Distance, ev.Depth), nil
}

// ETA returns the time from at until p arrives at site.  It is negative once p has passed.
func (ev Event) ETA(e *geod.Ellipsoid, site geod.Point, at time.Time, p Phase) (time.Duration, error) {
	if p.Velocity() == 0.0 {
		return 0, fmt.Errorf("unknown phase: %s", p)
	}

	d, err := ev.Hypocentral(e, site)
	if err != nil {
		return 0, err
	}

	travel := time.Duration(d / p.Velocity() * float64(time.Second))

	return travel - at.Sub(ev.Time), nil
}
