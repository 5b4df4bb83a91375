package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/GeoNet/kit/metrics"
	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/wavefront/internal/geod"
	"github.com/GeoNet/wavefront/internal/seismic"
	"github.com/GeoNet/wavefront/internal/valid"
	"github.com/pkg/errors"
)

const geoJSON = "application/vnd.geo+json"

type directQuery struct {
	Longitude float64 `schema:"longitude"`
	Latitude  float64 `schema:"latitude"`
	Azimuth   float64 `schema:"azimuth"`
	Distance  float64 `schema:"distance"`
}

type inverseQuery struct {
	Longitude1 float64 `schema:"longitude1"`
	Latitude1  float64 `schema:"latitude1"`
	Longitude2 float64 `schema:"longitude2"`
	Latitude2  float64 `schema:"latitude2"`
}

type wavefrontQuery struct {
	Longitude float64  `schema:"longitude"`
	Latitude  float64  `schema:"latitude"`
	Distance  *float64 `schema:"distance"`
	Elapsed   *float64 `schema:"elapsed"` // seconds since the origin time.
	Phase     string   `schema:"phase"`
}

type etaQuery struct {
	Longitude     float64    `schema:"longitude"`
	Latitude      float64    `schema:"latitude"`
	Depth         float64    `schema:"depth"`
	Time          wsDateTime `schema:"time"`
	SiteLongitude float64    `schema:"sitelongitude"`
	SiteLatitude  float64    `schema:"sitelatitude"`
	Phase         string     `schema:"phase"`
	At            wsDateTime `schema:"at"`
}

type intensityQuery struct {
	Longitude     float64 `schema:"longitude"`
	Latitude      float64 `schema:"latitude"`
	Magnitude     float64 `schema:"magnitude"`
	SiteLongitude float64 `schema:"sitelongitude"`
	SiteLatitude  float64 `schema:"sitelatitude"`
	SiteClass     string  `schema:"siteclass"`
}

type localityQuery struct {
	Longitude float64 `schema:"longitude"`
	Latitude  float64 `schema:"latitude"`
}

type inverse struct {
	Distance     float64 `json:"distance"`
	Azimuth      float64 `json:"azimuth"`
	FinalAzimuth float64 `json:"finalAzimuth"`
	Compass      string  `json:"compass"`
}

type eta struct {
	ETA      float64 `json:"eta"` // seconds, negative after arrival.
	Phase    string  `json:"phase"`
	Distance float64 `json:"distance"` // hypocentral km
}

type intensity struct {
	MMI       int     `json:"mmi"`
	Intensity float64 `json:"intensity"` // before rounding
	SiteClass string  `json:"siteClass"`
	Distance  float64 `json:"distance"` // epicentral km
}

type locality struct {
	Description string  `json:"description"`
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	Bearing     float64 `json:"bearing"`
}

var (
	directValid = valid.Query(map[string]valid.Validator{
		"longitude": valid.Longitude,
		"latitude":  valid.Latitude,
		"azimuth":   valid.Azimuth,
		"distance":  valid.Distance,
	})

	inverseValid = valid.Query(map[string]valid.Validator{
		"longitude1": valid.Longitude,
		"latitude1":  valid.Latitude,
		"longitude2": valid.Longitude,
		"latitude2":  valid.Latitude,
	})

	wavefrontValid = valid.Query(map[string]valid.Validator{
		"longitude": valid.Longitude,
		"latitude":  valid.Latitude,
		"distance":  valid.Distance,
		"elapsed":   valid.Elapsed,
		"phase":     valid.Phase,
	})

	etaValid = valid.Query(map[string]valid.Validator{
		"longitude":     valid.Longitude,
		"latitude":      valid.Latitude,
		"depth":         valid.Depth,
		"sitelongitude": valid.Longitude,
		"sitelatitude":  valid.Latitude,
		"phase":         valid.Phase,
	})

	intensityValid = valid.Query(map[string]valid.Validator{
		"longitude":     valid.Longitude,
		"latitude":      valid.Latitude,
		"magnitude":     valid.Magnitude,
		"sitelongitude": valid.Longitude,
		"sitelatitude":  valid.Latitude,
		"siteclass":     valid.SiteClass,
	})

	localityValid = valid.Query(map[string]valid.Validator{
		"longitude": valid.Longitude,
		"latitude":  valid.Latitude,
	})
)

func geodDirect(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"}, []string{"longitude", "latitude", "azimuth", "distance"}, []string{}, directValid)
	if err != nil {
		return err
	}

	var q directQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	origin := geod.Point{Longitude: q.Longitude, Latitude: q.Latitude}

	p, err := ellipsoid.Direct(origin, q.Azimuth, q.Distance)
	if err != nil {
		return valid.Geod(err)
	}

	s, err := ellipsoid.Inverse(origin, p)
	if err != nil {
		return valid.Geod(err)
	}

	h.Set("Content-Type", geoJSON)

	return json.NewEncoder(b).Encode(pointFeature(p, map[string]interface{}{
		"distance":     q.Distance,
		"azimuth":      q.Azimuth,
		"finalAzimuth": s.FinalAzimuth,
	}))
}

func geodInverse(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"}, []string{"longitude1", "latitude1", "longitude2", "latitude2"}, []string{}, inverseValid)
	if err != nil {
		return err
	}

	var q inverseQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	s, err := ellipsoid.Inverse(geod.Point{Longitude: q.Longitude1, Latitude: q.Latitude1}, geod.Point{Longitude: q.Longitude2, Latitude: q.Latitude2})
	if err != nil {
		return valid.Geod(err)
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(inverse{
		Distance:     s.Distance,
		Azimuth:      s.Azimuth,
		FinalAzimuth: s.FinalAzimuth,
		Compass:      seismic.Compass(s.Azimuth),
	})
}

// geodWavefront returns the wavefront around a point at a distance in km, or for a phase
// elapsed seconds after the origin time.  The phase defaults to P.
func geodWavefront(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"}, []string{"longitude", "latitude"}, []string{"distance", "elapsed", "phase"}, wavefrontValid)
	if err != nil {
		return err
	}

	var q wavefrontQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	switch {
	case q.Distance == nil && q.Elapsed == nil:
		return valid.Error{Code: http.StatusBadRequest, Err: errors.New("one of distance or elapsed must be set")}
	case q.Distance != nil && q.Elapsed != nil:
		return valid.Error{Code: http.StatusBadRequest, Err: errors.New("only one of distance or elapsed may be set")}
	case q.Distance != nil && q.Phase != "":
		return valid.Error{Code: http.StatusBadRequest, Err: errors.New("phase is only used with elapsed")}
	}

	t := metrics.Start()

	ring, err := ellipsoid.Ring(geod.Point{Longitude: q.Longitude, Latitude: q.Latitude})
	if err != nil {
		return valid.Geod(err)
	}

	if err = t.Track("ring"); err != nil {
		log.Print(err)
	}

	properties := make(map[string]interface{})

	t = metrics.Start()

	var w geod.WavePoints

	switch q.Distance {
	case nil:
		p := seismic.P
		if q.Phase != "" {
			if p, err = seismic.ParsePhase(q.Phase); err != nil {
				return valid.Error{Code: http.StatusBadRequest, Err: err}
			}
		}

		elapsed := time.Duration(*q.Elapsed * float64(time.Second))

		if w, err = seismic.Wave(ring, elapsed, p); err != nil {
			return valid.Geod(err)
		}

		properties["phase"] = string(p)
		properties["elapsed"] = *q.Elapsed
		properties["distance"] = seismic.Radius(elapsed, p)
	default:
		if w, err = ring.Wavefront(*q.Distance); err != nil {
			return valid.Geod(err)
		}

		properties["distance"] = *q.Distance
	}

	if err = t.Track("wavefront"); err != nil {
		log.Print(err)
	}

	enc, err := ellipsoid.Enclosure(w)
	if err != nil {
		return valid.Geod(err)
	}

	properties["perimeter"] = enc.Perimeter
	properties["area"] = enc.Area

	h.Set("Content-Type", geoJSON)

	return json.NewEncoder(b).Encode(lineStringFeature(w, properties))
}

// geodETA returns the time until a phase, S by default, arrives at a site.
// The time is relative to at, or now if at is not set.
func geodETA(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"},
		[]string{"longitude", "latitude", "depth", "time", "sitelongitude", "sitelatitude"},
		[]string{"phase", "at"}, etaValid)
	if err != nil {
		return err
	}

	var q etaQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	p := seismic.S
	if q.Phase != "" {
		if p, err = seismic.ParsePhase(q.Phase); err != nil {
			return valid.Error{Code: http.StatusBadRequest, Err: err}
		}
	}

	at := q.At.Time
	if at.IsZero() {
		at = time.Now().UTC()
	}

	ev := seismic.Event{
		Origin: geod.Point{Longitude: q.Longitude, Latitude: q.Latitude},
		Depth:  q.Depth,
		Time:   q.Time.Time,
	}

	site := geod.Point{Longitude: q.SiteLongitude, Latitude: q.SiteLatitude}

	d, err := ev.Hypocentral(ellipsoid, site)
	if err != nil {
		return valid.Geod(err)
	}

	e, err := ev.ETA(ellipsoid, site, at, p)
	if err != nil {
		return valid.Geod(err)
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(eta{
		ETA:      e.Seconds(),
		Phase:    string(p),
		Distance: d,
	})
}

// geodIntensity returns the Modified Mercalli Intensity expected at a site from the horizontal
// S wave of an earthquake.  The site class defaults to rock.
func geodIntensity(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"},
		[]string{"longitude", "latitude", "magnitude", "sitelongitude", "sitelatitude"},
		[]string{"siteclass"}, intensityValid)
	if err != nil {
		return err
	}

	var q intensityQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	rs := seismic.Rock
	if q.SiteClass != "" {
		if rs, err = seismic.ParseSiteClass(q.SiteClass); err != nil {
			return valid.Error{Code: http.StatusBadRequest, Err: err}
		}
	}

	ev := seismic.Event{Origin: geod.Point{Longitude: q.Longitude, Latitude: q.Latitude}}

	mmi, raw, d, err := seismic.SiteIntensity(ellipsoid, geod.Point{Longitude: q.SiteLongitude, Latitude: q.SiteLatitude}, ev, q.Magnitude, rs)
	if err != nil {
		return valid.Geod(err)
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(intensity{
		MMI:       mmi,
		Intensity: raw,
		SiteClass: string(rs),
		Distance:  d,
	})
}

func geodLocality(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"}, []string{"longitude", "latitude"}, []string{}, localityValid)
	if err != nil {
		return err
	}

	var q localityQuery

	if err = decoder.Decode(&q, v); err != nil {
		return valid.Error{Code: http.StatusBadRequest, Err: err}
	}

	l, err := seismic.Closest(geod.Point{Longitude: q.Longitude, Latitude: q.Latitude})
	if err != nil {
		return err
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(locality{
		Description: l.Description(),
		Name:        l.Name,
		Distance:    l.Distance,
		Bearing:     l.Bearing,
	})
}
