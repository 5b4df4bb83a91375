package main

import (
	"bytes"
	"fmt"
	"math"
	"net/http"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/wavefront/internal/geod"
)

var mux *http.ServeMux

func init() {
	mux = http.NewServeMux()

	mux.HandleFunc("/", weft.MakeHandler(weft.NoMatch, weft.TextError))
	mux.HandleFunc("/soh/up", weft.MakeHandler(weft.Up, weft.TextError))
	mux.HandleFunc("/soh", weft.MakeHandler(soh, weft.TextError))

	mux.HandleFunc("/geod/direct", weft.MakeHandler(geodDirect, weft.TextError))
	mux.HandleFunc("/geod/inverse", weft.MakeHandler(geodInverse, weft.TextError))
	mux.HandleFunc("/geod/wavefront", weft.MakeHandler(geodWavefront, weft.TextError))
	mux.HandleFunc("/geod/eta", weft.MakeHandler(geodETA, weft.TextError))
	mux.HandleFunc("/geod/intensity", weft.MakeHandler(geodIntensity, weft.TextError))
	mux.HandleFunc("/geod/locality", weft.MakeHandler(geodLocality, weft.TextError))
}

// soh is for external health checks.  It solves a known inverse problem on the
// configured ellipsoid and returns a service unavailable error if the answer is not sensible.
func soh(r *http.Request, h http.Header, b *bytes.Buffer) error {
	err := weft.CheckQuery(r, []string{"GET"}, []string{}, []string{})
	if err != nil {
		return err
	}

	s, err := ellipsoid.Inverse(geod.Point{Longitude: 0.0, Latitude: 0.0}, geod.Point{Longitude: 1.0, Latitude: 0.0})
	if err != nil {
		return err
	}

	// one degree of longitude at the equator is a/1000 * pi/180 km for any flattening.
	expected := ellipsoid.SemiMajorAxis() / 1000.0 * math.Pi / 180.0

	if math.Abs(s.Distance-expected) > 1e-6 || math.Abs(s.Azimuth-90.0) > 1e-6 {
		return weft.StatusError{Code: http.StatusServiceUnavailable, Err: fmt.Errorf("unexpected inverse solution %f km %f", s.Distance, s.Azimuth)}
	}

	h.Set("Content-Type", "text/html; charset=utf-8")

	b.Write([]byte(fmt.Sprintf("<html><head></head><body>ok %f km</body></html>", s.Distance)))

	return nil
}
