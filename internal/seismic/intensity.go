package seismic

import (
	"fmt"
	"math"
	"strings"

	"github.com/GeoNet/wavefront/internal/geod"
)

// Measure is a ground motion intensity measure.
type Measure string

const (
	PGA Measure = "PGA" // peak ground acceleration cm/s/s
	PGV Measure = "PGV" // peak ground velocity cm/s
	FD  Measure = "FD"  // 3 s high pass filtered displacement cm
)

// Component is the direction of ground motion.
type Component string

const (
	Horizontal Component = "H"
	Vertical   Component = "Z"
)

// SiteClass is the ground at a site.  Rock is NEHRP class BC and above,
// Soil is class C and below.
type SiteClass string

const (
	Rock SiteClass = "R"
	Soil SiteClass = "S"
)

// ParseSiteClass returns the SiteClass for s e.g., "r" or "S".
func ParseSiteClass(s string) (SiteClass, error) {
	switch c := SiteClass(strings.ToUpper(strings.TrimSpace(s))); c {
	case Rock, Soil:
		return c, nil
	}

	return "", fmt.Errorf("unknown site class: %s", s)
}

type motion struct {
	im Measure
	zh Component
	ps Phase
	rs SiteClass
}

// Cua and Heaton (2007) ground motion coefficients.
type coefficients struct {
	a, b, c1, c2, d, e, sigma float64
}

var ch2007 = map[motion]coefficients{
	{PGA, Horizontal, P, Rock}: {a: 0.72, b: 3.3e-3, c1: 1.6, c2: 1.05, d: 1.2, e: -1.06, sigma: 0.31},
	{PGA, Horizontal, P, Soil}: {a: 0.74, b: 3.3e-3, c1: 2.41, c2: 0.95, d: 1.26, e: -1.05, sigma: 0.29},
	{PGV, Horizontal, P, Rock}: {a: 0.80, b: 8.4e-4, c1: 0.76, c2: 1.03, d: 1.24, e: -3.103, sigma: 0.27},
	{PGV, Horizontal, P, Soil}: {a: 0.84, b: 5.4e-4, c1: 1.21, c2: 0.97, d: 1.28, e: -3.13, sigma: 0.26},
	{FD, Horizontal, P, Rock}:  {a: 0.95, b: 1.7e-7, c1: 2.16, c2: 1.08, d: 1.27, e: -4.96, sigma: 0.28},
	{FD, Horizontal, P, Soil}:  {a: 0.94, b: 5.17e-7, c1: 2.26, c2: 1.02, d: 1.16, e: -5.01, sigma: 0.3},
	{PGA, Horizontal, S, Rock}: {a: 0.733, b: 7.216e-4, c1: 1.16, c2: 0.96, d: 1.48, e: -0.4202, sigma: 0.3069},
	{PGA, Horizontal, S, Soil}: {a: 0.709, b: 2.3878e-3, c1: 1.722, c2: 0.9560, d: 1.4386, e: -2.4525e-2, sigma: 0.3261},
	{PGV, Horizontal, S, Rock}: {a: 0.861988, b: 5.578e-4, c1: 0.8386, c2: 0.98, d: 1.36760, e: -2.58053, sigma: 0.2773},
	{PGV, Horizontal, S, Soil}: {a: 0.88649, b: 8.4e-4, c1: 1.39, c2: 0.95, d: 1.4729, e: -2.2498, sigma: 0.3193},
	{FD, Horizontal, S, Rock}:  {a: 1.03, b: 1.01e-7, c1: 1.09, c2: 1.13, d: 1.43, e: -4.34, sigma: 0.27},
	{FD, Horizontal, S, Soil}:  {a: 1.08, b: 1.2e-6, c1: 1.95, c2: 1.09, d: 1.56, e: -4.1, sigma: 0.32},
	{PGA, Vertical, P, Rock}:   {a: 0.74, b: 4.01e-3, c1: 1.75, c2: 1.09, d: 1.2, e: -0.96, sigma: 0.29},
	{PGA, Vertical, P, Soil}:   {a: 0.74, b: 5.17e-7, c1: 2.03, c2: 0.97, d: 1.2, e: -0.77, sigma: 0.31},
	{PGV, Vertical, P, Rock}:   {a: 0.82, b: 8.54e-4, c1: 1.14, c2: 1.11, d: 1.36, e: -2.90057, sigma: 0.26},
	{PGV, Vertical, P, Soil}:   {a: 0.81, b: 2.65e-6, c1: 1.4, c2: 1.0, d: 1.48, e: -2.55, sigma: 0.30},
	{FD, Vertical, P, Rock}:    {a: 0.96, b: 1.98e-6, c1: 1.66, c2: 1.16, d: 1.34, e: -4.79, sigma: 0.28},
	{FD, Vertical, P, Soil}:    {a: 0.93, b: 1.09e-7, c1: 1.5, c2: 1.04, d: 1.23, e: -4.74, sigma: 0.31},
	{PGA, Vertical, S, Rock}:   {a: 0.78, b: 2.7e-3, c1: 1.76, c2: 1.11, d: 1.38, e: -0.75, sigma: 0.30},
	{PGA, Vertical, S, Soil}:   {a: 0.75, b: 2.47e-3, c1: 1.59, c2: 1.01, d: 1.47, e: -0.36, sigma: 0.30},
	{PGV, Vertical, S, Rock}:   {a: 0.90, b: 1.03e-3, c1: 1.39, c2: 1.09, d: 1.51, e: -2.78, sigma: 0.25},
	{PGV, Vertical, S, Soil}:   {a: 0.88, b: 5.41e-4, c1: 1.53, c2: 1.04, d: 1.48, e: -2.54, sigma: 0.27},
	{FD, Vertical, S, Rock}:    {a: 1.04, b: 1.12e-5, c1: 1.38, c2: 1.18, d: 1.37, e: -4.74, sigma: 0.25},
	{FD, Vertical, S, Soil}:    {a: 1.04, b: 4.92e-6, c1: 1.55, c2: 1.08, d: 1.36, e: -4.57, sigma: 0.28},
}

// LogMotion returns log10 of the median ground motion and its log10 standard deviation
// for a magnitude at distance km from the epicentre (Cua and Heaton, 2007).
func LogMotion(magnitude, distance float64, im Measure, zh Component, ps Phase, rs SiteClass) (logY, sigma float64, err error) {
	c, ok := ch2007[motion{im: im, zh: zh, ps: ps, rs: rs}]
	if !ok {
		return 0.0, 0.0, fmt.Errorf("no ground motion coefficients for %s %s %s %s", im, zh, ps, rs)
	}

	r := math.Sqrt(distance*distance + 9.0)
	cm := c.c1 * math.Exp(c.c2*(magnitude-5.0)) * (math.Atan(magnitude-5.0) + 1.4)

	return c.a*magnitude - c.b*(r+cm) - c.d*math.Log10(r+cm) + c.e, c.sigma, nil
}

// Worden et al. (2012) Eq. 3 coefficients.
const (
	c1pga = 1.78
	c2pga = 1.55
	c3pga = -1.60
	c4pga = 3.70
	t1pga = 1.57

	c1pgv = 3.78
	c2pgv = 1.47
	c3pgv = 2.89
	c4pgv = 3.16
	t1pgv = 0.53
)

// MMI converts log10 PGA (cm/s/s) and log10 PGV (cm/s) to Modified Mercalli Intensity
// (Worden et al., 2012, Eq. 3 without distance correction).  raw is the mean of the
// PGA and PGV intensities.  mmi is raw rounded to the nearest integer, half to even,
// and limited to 1..10.
func MMI(logPGA, logPGV float64) (mmi int, raw float64) {
	var a, v float64

	if logPGA <= t1pga {
		a = c1pga + c2pga*logPGA
	} else {
		a = c3pga + c4pga*logPGA
	}

	if logPGV <= t1pgv {
		v = c1pgv + c2pgv*logPGV
	} else {
		v = c3pgv + c4pgv*logPGV
	}

	raw = (a + v) / 2.0

	switch {
	case raw < 1.5:
		return 1, raw
	case raw > 9.5:
		return 10, raw
	}

	return int(math.RoundToEven(raw)), raw
}

// Intensity returns the shaking expected at site from ev with magnitude.  The ground motion
// is the horizontal S wave on rock at the epicentral distance in km.
func Intensity(e *geod.Ellipsoid, site geod.Point, ev Event, magnitude float64) (mmi int, raw float64, distance float64, err error) {
	return SiteIntensity(e, site, ev, magnitude, Rock)
}

// SiteIntensity is Intensity for a site on rs.
func SiteIntensity(e *geod.Ellipsoid, site geod.Point, ev Event, magnitude float64, rs SiteClass) (mmi int, raw float64, distance float64, err error) {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return 0, 0.0, 0.0, fmt.Errorf("invalid magnitude: %f", magnitude)
	}

	s, err := e.Inverse(ev.Origin, site)
	if err != nil {
		return 0, 0.0, 0.0, err
	}

	logPGA, _, err := LogMotion(magnitude, s.Distance, PGA, Horizontal, S, rs)
	if err != nil {
		return 0, 0.0, 0.0, err
	}

	logPGV, _, err := LogMotion(magnitude, s.Distance, PGV, Horizontal, S, rs)
	if err != nil {
		return 0, 0.0, 0.0, err
	}

	mmi, raw = MMI(logPGA, logPGV)

	return mmi, raw, s.Distance, nil
}
