package geod

import (
	"math"

	"github.com/pkg/errors"
)

// RingSize is the number of lines in a Ring, one for each integer azimuth 0..360.
// Azimuth 360 duplicates azimuth 0 so the last point of a wavefront closes the ring.
const RingSize = 361

// Line is a geodesic from a fixed origin with a fixed initial azimuth.
type Line struct {
	e       *Ellipsoid
	origin  Point
	azimuth float64
}

// Line returns the geodesic line from origin with initial azimuth (degrees).
func (e *Ellipsoid) Line(origin Point, azimuth float64) (Line, error) {
	if err := e.ready(); err != nil {
		return Line{}, err
	}

	if err := origin.valid(); err != nil {
		return Line{}, err
	}

	if !finite(azimuth) {
		return Line{}, errors.Wrapf(ErrInvalidNumeric, "azimuth %f", azimuth)
	}

	return Line{e: e, origin: origin, azimuth: azimuth}, nil
}

func (l Line) Origin() Point {
	return l.origin
}

func (l Line) Azimuth() float64 {
	return l.azimuth
}

// Position returns the point distance km along l.  Negative distances are behind the origin.
func (l Line) Position(distance float64) (Point, error) {
	if err := l.e.ready(); err != nil {
		return Point{}, err
	}

	if !finite(distance) {
		return Point{}, errors.Wrapf(ErrInvalidNumeric, "distance %f", distance)
	}

	return l.e.direct(l.origin, l.azimuth, distance)
}

// Ring is RingSize lines around a common origin.  Index i has azimuth i degrees.
// A Ring is not changed after it is created and is safe for concurrent use.
type Ring struct {
	origin Point
	lines  []Line
}

// WavePoints are the points of a wavefront, parallel to the Ring indices.
type WavePoints []Point

// Ring returns the lines around origin for the integer azimuths 0..360.
func (e *Ellipsoid) Ring(origin Point) (*Ring, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if err := origin.valid(); err != nil {
		return nil, err
	}

	r := Ring{
		origin: origin,
		lines:  make([]Line, RingSize),
	}

	for i := range r.lines {
		r.lines[i] = Line{e: e, origin: origin, azimuth: float64(i)}
	}

	return &r, nil
}

func (r *Ring) Origin() Point {
	return r.origin
}

func (r *Ring) Len() int {
	return len(r.lines)
}

// Line returns the line at index i which has azimuth i degrees.  i must be in [0, RingSize).
func (r *Ring) Line(i int) (Line, error) {
	if r == nil || len(r.lines) == 0 {
		return Line{}, ErrNotInitialized
	}

	if i < 0 || i >= len(r.lines) {
		return Line{}, errors.Wrapf(ErrInvalidNumeric, "line index %d", i)
	}

	return r.lines[i], nil
}

// Wavefront returns the points distance km from the ring origin along every line in the ring.
func (r *Ring) Wavefront(distance float64) (WavePoints, error) {
	if r == nil || len(r.lines) == 0 {
		return nil, ErrNotInitialized
	}

	if !finite(distance) {
		return nil, errors.Wrapf(ErrInvalidNumeric, "distance %f", distance)
	}

	w := make(WavePoints, len(r.lines))

	var err error

	for i, l := range r.lines {
		w[i], err = l.Position(distance)
		if err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Enclosure is the size of the region bounded by a closed ring of points.
type Enclosure struct {
	Perimeter float64 // km
	Area      float64 // km²
}

// Enclosure returns the perimeter and area of the polygon with vertices points joined by geodesics.
// A last point equal to the first, as at azimuth 360 in a wavefront, is not repeated.
// The vertices may be in either order.
func (e *Ellipsoid) Enclosure(points []Point) (Enclosure, error) {
	if err := e.ready(); err != nil {
		return Enclosure{}, err
	}

	n := len(points)
	if n > 1 && points[n-1] == points[0] {
		n--
	}

	p := e.g.PolygonInit(false)

	for _, v := range points[:n] {
		if err := v.valid(); err != nil {
			return Enclosure{}, err
		}
		p.AddPoint(v.Latitude, v.Longitude)
	}

	var area, perimeter float64

	// signed so traversal order only changes the sign, not which side of the ring is measured.
	p.Compute(true, true, &area, &perimeter)

	return Enclosure{Perimeter: perimeter / 1000.0, Area: math.Abs(area) / 1.0e6}, nil
}
