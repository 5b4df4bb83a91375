package seismic

import (
	"math"

	"github.com/GeoNet/kit/wgs84"
	"github.com/GeoNet/wavefront/internal/geod"
)

// Closest returns the closest New Zealand locality to p.
// Locality.Bearing is from the locality to p.
func Closest(p geod.Point) (wgs84.Locality, error) {
	return wgs84.ClosestNZ(p.Latitude, p.Longitude)
}

// Describe returns a description of p relative to the closest New Zealand locality
// e.g., "25 km north-east of Wellington".
func Describe(p geod.Point) (string, error) {
	l, err := Closest(p)
	if err != nil {
		return "", err
	}

	return l.Description(), nil
}

// Compass returns the compass name e.g., south-east for an azimuth in degrees.
// Azimuths from geod are in [-180, 180] and are reduced to [0, 360) first.
func Compass(azimuth float64) string {
	a := math.Mod(azimuth, 360.0)
	if a < 0 {
		a += 360.0
	}

	return wgs84.Compass(a)
}
