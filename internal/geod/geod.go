// Package geod is for geodesic and wavefront calculations on a reference ellipsoid.
//
// The geodesic problems are solved by github.com/tidwall/geodesic.  This package works
// in degrees and kilometres and converts to the metres used by the solver at its boundary.
package geod

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/geodesic"
)

const (
	WGS84SemiMajorAxis = 6378137.0         // equatorial WGS84 (m)
	WGS84Flattening    = 1 / 298.257223563 // WGS84
)

var (
	// ErrInvalidCoordinate is for latitudes outside [-90, 90].
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidNumeric is for NaN or infinite input.
	ErrInvalidNumeric = errors.New("invalid numeric value")
	// ErrNotInitialized is returned when using a nil Ellipsoid or a zero Line or Ring.
	ErrNotInitialized = errors.New("ellipsoid not initialized")
)

// Point is a location in decimal degrees, East and North positive.
type Point struct {
	Longitude, Latitude float64
}

// String formats p as "lon lat".
func (p Point) String() string {
	return fmt.Sprintf("%f %f", p.Longitude, p.Latitude)
}

func (p Point) valid() error {
	if !finite(p.Longitude) || !finite(p.Latitude) {
		return errors.Wrapf(ErrInvalidNumeric, "point %f %f", p.Longitude, p.Latitude)
	}

	if p.Latitude < -90.0 || p.Latitude > 90.0 {
		return errors.Wrapf(ErrInvalidCoordinate, "latitude %f outside [-90, 90]", p.Latitude)
	}

	return nil
}

// Ellipsoid holds the parameters of a reference ellipsoid and the solver state for it.
// It is not changed after it is created and is safe for concurrent use.
type Ellipsoid struct {
	a, f float64
	g    *geodesic.Ellipsoid
}

// WGS84 returns an Ellipsoid for the WGS84 reference ellipsoid.
func WGS84() *Ellipsoid {
	return &Ellipsoid{
		a: WGS84SemiMajorAxis,
		f: WGS84Flattening,
		g: geodesic.NewEllipsoid(WGS84SemiMajorAxis, WGS84Flattening),
	}
}

// NewEllipsoid returns an Ellipsoid with semi-major axis a (m) and flattening f.
func NewEllipsoid(a, f float64) (*Ellipsoid, error) {
	if !finite(a) || a <= 0.0 {
		return nil, errors.Wrapf(ErrInvalidNumeric, "semi-major axis %f", a)
	}

	// the polar semi-axis a*(1-f) must also be positive.
	if !finite(f) || f >= 1.0 {
		return nil, errors.Wrapf(ErrInvalidNumeric, "flattening %f", f)
	}

	return &Ellipsoid{a: a, f: f, g: geodesic.NewEllipsoid(a, f)}, nil
}

// SemiMajorAxis returns the equatorial radius in metres.
func (e *Ellipsoid) SemiMajorAxis() float64 {
	return e.a
}

func (e *Ellipsoid) Flattening() float64 {
	return e.f
}

func (e *Ellipsoid) ready() error {
	if e == nil || e.g == nil {
		return ErrNotInitialized
	}
	return nil
}

// Direct solves the direct geodesic problem.  It returns the point reached from origin
// after travelling distance km with initial azimuth (degrees clockwise from north).
// The longitude returned is in the range [-180, 180].
func (e *Ellipsoid) Direct(origin Point, azimuth, distance float64) (Point, error) {
	if err := e.ready(); err != nil {
		return Point{}, err
	}

	if err := origin.valid(); err != nil {
		return Point{}, err
	}

	if !finite(azimuth) {
		return Point{}, errors.Wrapf(ErrInvalidNumeric, "azimuth %f", azimuth)
	}

	if !finite(distance) {
		return Point{}, errors.Wrapf(ErrInvalidNumeric, "distance %f", distance)
	}

	return e.direct(origin, azimuth, distance)
}

// direct assumes the input has been checked.
func (e *Ellipsoid) direct(origin Point, azimuth, distance float64) (Point, error) {
	var p Point

	e.g.Direct(origin.Latitude, origin.Longitude, azimuth, distance*1000.0, &p.Latitude, &p.Longitude, nil)

	if !finite(p.Longitude) || !finite(p.Latitude) {
		return Point{}, errors.Wrapf(ErrInvalidNumeric, "no solution from %s azimuth %f distance %f", origin, azimuth, distance)
	}

	return p, nil
}

// Solution is the solution to the inverse geodesic problem.
type Solution struct {
	Distance     float64 // km from p1 to p2.
	Azimuth      float64 // azimuth at p1, degrees in [-180, 180].
	FinalAzimuth float64 // forward azimuth at p2, degrees in [-180, 180].
}

// Inverse solves the inverse geodesic problem between p1 and p2.
//
// Reversing the points gives the same Distance and an Azimuth that
// differs from FinalAzimuth by 180 degrees.
func (e *Ellipsoid) Inverse(p1, p2 Point) (Solution, error) {
	if err := e.ready(); err != nil {
		return Solution{}, err
	}

	if err := p1.valid(); err != nil {
		return Solution{}, err
	}

	if err := p2.valid(); err != nil {
		return Solution{}, err
	}

	var s Solution

	e.g.Inverse(p1.Latitude, p1.Longitude, p2.Latitude, p2.Longitude, &s.Distance, &s.Azimuth, &s.FinalAzimuth)

	if !finite(s.Distance) || !finite(s.Azimuth) {
		return Solution{}, errors.Wrapf(ErrInvalidNumeric, "no solution from %s to %s", p1, p2)
	}

	s.Distance = s.Distance / 1000.0

	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
