// wavefront prints the direct and inverse geodesic solutions for a point, azimuth and distance
// and the wavefront at that distance around the point.
//
//	wavefront lon lat azimuth distance
//
// The reference ellipsoid is WGS84 unless ELLIPSOID_SEMI_MAJOR_AXIS and ELLIPSOID_FLATTENING are set.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/GeoNet/wavefront/internal/geod"
	"github.com/GeoNet/wavefront/internal/platform/cfg"
)

const usage = "Usage: wavefront lon lat azimuth distance (km)"

func main() {
	if len(os.Args) < 5 {
		fmt.Println(usage)
		return
	}

	e, err := cfg.EllipsoidEnv()
	if err != nil {
		log.Fatalf("error reading ellipsoid config from the environment vars: %s", err)
	}

	w := bufio.NewWriter(os.Stdout)

	if err := run(e, os.Args[1:5], w); err != nil {
		log.Fatal(err)
	}

	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

// run writes the direct solution, the inverse solution back to the origin and the
// wavefront at the inverse distance to w.
func run(e *geod.Ellipsoid, args []string, w io.Writer) error {
	origin := geod.Point{Longitude: atof(args[0]), Latitude: atof(args[1])}
	azimuth := atof(args[2])
	distance := atof(args[3])

	r, err := e.Ring(origin)
	if err != nil {
		return err
	}

	p, err := e.Direct(origin, azimuth, distance)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(w, "%f %f\n", p.Longitude, p.Latitude); err != nil {
		return err
	}

	s, err := e.Inverse(origin, p)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(w, "%f %f\n", s.Distance, s.Azimuth); err != nil {
		return err
	}

	wave, err := r.Wavefront(s.Distance)
	if err != nil {
		return err
	}

	for _, v := range wave {
		if _, err = fmt.Fprintf(w, "%f %f\n", v.Longitude, v.Latitude); err != nil {
			return err
		}
	}

	return nil
}

// atof reads input that is not a number as zero.
func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
