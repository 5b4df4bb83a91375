// Package cfg is for reading config from environment variables.
package cfg

import (
	"os"
	"strconv"

	"github.com/GeoNet/wavefront/internal/geod"
	"github.com/pkg/errors"
)

// EllipsoidEnv returns the reference ellipsoid configured by the environment variables
// ELLIPSOID_SEMI_MAJOR_AXIS (m) and ELLIPSOID_FLATTENING.  Both or neither must be set.
// WGS84 is returned when neither is set.
func EllipsoidEnv() (*geod.Ellipsoid, error) {
	a := os.Getenv("ELLIPSOID_SEMI_MAJOR_AXIS")
	f := os.Getenv("ELLIPSOID_FLATTENING")

	if a == "" && f == "" {
		return geod.WGS84(), nil
	}

	if a == "" {
		return nil, errors.New("ELLIPSOID_SEMI_MAJOR_AXIS env var must be set with ELLIPSOID_FLATTENING.")
	}

	if f == "" {
		return nil, errors.New("ELLIPSOID_FLATTENING env var must be set with ELLIPSOID_SEMI_MAJOR_AXIS.")
	}

	semiMajor, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return nil, errors.New("ELLIPSOID_SEMI_MAJOR_AXIS invalid: " + err.Error())
	}

	flattening, err := parseFlattening(f)
	if err != nil {
		return nil, errors.New("ELLIPSOID_FLATTENING invalid: " + err.Error())
	}

	e, err := geod.NewEllipsoid(semiMajor, flattening)
	if err != nil {
		return nil, errors.Wrap(err, "ELLIPSOID invalid")
	}

	return e, nil
}

// parseFlattening accepts a decimal e.g., 0.0033528 or an inverse flattening
// written as a fraction e.g., 1/298.257223563.
func parseFlattening(s string) (float64, error) {
	if len(s) > 2 && s[:2] == "1/" {
		inv, err := strconv.ParseFloat(s[2:], 64)
		if err != nil {
			return 0.0, err
		}
		if inv == 0.0 {
			return 0.0, errors.New("zero inverse flattening")
		}
		return 1.0 / inv, nil
	}

	return strconv.ParseFloat(s, 64)
}
