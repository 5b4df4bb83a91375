package valid

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/wavefront/internal/geod"
	"github.com/GeoNet/wavefront/internal/seismic"
	"github.com/pkg/errors"
)

type Validator func(string) error

// implements weft.Error
type Error struct {
	Code int
	Err  error
}

func (s Error) Error() string {
	if s.Err == nil {
		return "<nil>"
	}
	return s.Err.Error()
}

func (s Error) Status() int {
	return s.Code
}

func badRequest(format string, a ...interface{}) error {
	return Error{Code: http.StatusBadRequest, Err: fmt.Errorf(format, a...)}
}

// number parses s as a finite float.
func number(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0, errors.New("not finite")
	}

	return f, nil
}

// Longitude for validating longitudes in degrees.  0-360 is allowed for points east of the dateline.
func Longitude(s string) error {
	f, err := number(s)
	if err != nil {
		return badRequest("invalid longitude: %s", s)
	}

	if f < -180.0 || f > 360.0 {
		return badRequest("invalid longitude: %s", s)
	}

	return nil
}

func Latitude(s string) error {
	f, err := number(s)
	if err != nil {
		return badRequest("invalid latitude: %s", s)
	}

	if f < -90.0 || f > 90.0 {
		return badRequest("invalid latitude: %s", s)
	}

	return nil
}

// Azimuth for validating azimuths in degrees.  Any finite value is allowed.
func Azimuth(s string) error {
	if _, err := number(s); err != nil {
		return badRequest("invalid azimuth: %s", s)
	}

	return nil
}

// Distance for validating distances in km.  Negative distances are allowed and
// travel in the opposite direction.
func Distance(s string) error {
	if _, err := number(s); err != nil {
		return badRequest("invalid distance: %s", s)
	}

	return nil
}

// Depth for validating hypocentre depths in km.
func Depth(s string) error {
	f, err := number(s)
	if err != nil || f < 0.0 {
		return badRequest("invalid depth: %s", s)
	}

	return nil
}

// MaxElapsed is the longest elapsed time in seconds after an origin time.
// A seismic wave has travelled around the earth well within a day.
const MaxElapsed = 86400.0

// Elapsed for validating elapsed seconds since an origin time.
func Elapsed(s string) error {
	f, err := number(s)
	if err != nil || f < 0.0 || f > MaxElapsed {
		return badRequest("invalid elapsed: %s", s)
	}

	return nil
}

// Magnitude for validating earthquake magnitudes.
func Magnitude(s string) error {
	f, err := number(s)
	if err != nil || f < 0.0 || f > 10.0 {
		return badRequest("invalid magnitude: %s", s)
	}

	return nil
}

func SiteClass(s string) error {
	if _, err := seismic.ParseSiteClass(s); err != nil {
		return badRequest("invalid siteclass: %s", s)
	}

	return nil
}

func Phase(s string) error {
	if _, err := seismic.ParsePhase(s); err != nil {
		return badRequest("invalid phase: %s", s)
	}

	return nil
}

// Query returns a weft.QueryValidator that applies validators to the query parameters
// that are present.  Required parameters are checked by weft.
func Query(validators map[string]Validator) weft.QueryValidator {
	return func(v url.Values) error {
		for k, fn := range validators {
			s := v.Get(k)
			if s == "" {
				continue
			}

			if err := fn(s); err != nil {
				return err
			}
		}

		return nil
	}
}

// Geod maps errors from package geod for invalid input to a bad request.
// Other errors are returned unchanged.
func Geod(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, geod.ErrInvalidCoordinate), errors.Is(err, geod.ErrInvalidNumeric):
		return Error{Code: http.StatusBadRequest, Err: err}
	}

	return err
}
