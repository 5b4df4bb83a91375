package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"testing"
	"time"

	wt "github.com/GeoNet/kit/weft/wefttest"
	"github.com/GeoNet/wavefront/internal/geod"
)

type testFeature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

func getJSON(t *testing.T, r wt.Request, v interface{}) {
	b, err := r.Do(testServer.URL)
	if err != nil {
		t.Fatal(err)
	}

	if err = json.Unmarshal(b, v); err != nil {
		t.Fatalf("%s %s", r.ID, err)
	}
}

func TestGeodDirect(t *testing.T) {
	setup(t)
	defer teardown()

	var f testFeature

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/direct?longitude=34.8&latitude=31.5&azimuth=45&distance=100", Content: geoJSON}, &f)

	if f.Type != "Feature" || f.Geometry.Type != "Point" {
		t.Errorf("expected Feature Point got %s %s", f.Type, f.Geometry.Type)
	}

	var c [2]float64

	if err := json.Unmarshal(f.Geometry.Coordinates, &c); err != nil {
		t.Fatal(err)
	}

	p, err := geod.WGS84().Direct(geod.Point{Longitude: 34.8, Latitude: 31.5}, 45.0, 100.0)
	if err != nil {
		t.Fatal(err)
	}

	if c[0] != p.Longitude || c[1] != p.Latitude {
		t.Errorf("expected %s got %f %f", p, c[0], c[1])
	}

	if f.Properties["distance"] != 100.0 {
		t.Errorf("expected distance 100 got %v", f.Properties["distance"])
	}
}

func TestGeodInverse(t *testing.T) {
	setup(t)
	defer teardown()

	var i inverse

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/inverse?longitude1=0&latitude1=0&longitude2=1&latitude2=0", Content: "application/json"}, &i)

	if math.Abs(i.Distance-111.319491) > 1e-6 {
		t.Errorf("expected distance 111.319491 got %f", i.Distance)
	}

	if math.Abs(i.Azimuth-90.0) > 1e-9 {
		t.Errorf("expected azimuth 90 got %f", i.Azimuth)
	}

	if i.Compass != "east" {
		t.Errorf("expected compass east got %s", i.Compass)
	}

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/inverse?longitude1=1&latitude1=0&longitude2=0&latitude2=0", Content: "application/json"}, &i)

	if i.Compass != "west" {
		t.Errorf("expected compass west got %s", i.Compass)
	}
}

func TestGeodWavefront(t *testing.T) {
	setup(t)
	defer teardown()

	in := []struct {
		id       string
		url      string
		distance float64
		phase    interface{}
	}{
		{id: wt.L(), url: "/geod/wavefront?longitude=174.77&latitude=-41.28&distance=10", distance: 10.0},
		{id: wt.L(), url: "/geod/wavefront?longitude=174.77&latitude=-41.28&elapsed=20", distance: 122.0, phase: "P"},
		{id: wt.L(), url: "/geod/wavefront?longitude=174.77&latitude=-41.28&elapsed=20&phase=s", distance: 71.0, phase: "S"},
	}

	for _, v := range in {
		var f testFeature

		getJSON(t, wt.Request{ID: v.id, URL: v.url, Content: geoJSON}, &f)

		if f.Geometry.Type != "LineString" {
			t.Errorf("%s expected LineString got %s", v.id, f.Geometry.Type)
		}

		var c [][2]float64

		if err := json.Unmarshal(f.Geometry.Coordinates, &c); err != nil {
			t.Fatal(err)
		}

		if len(c) != geod.RingSize {
			t.Fatalf("%s expected %d points got %d", v.id, geod.RingSize, len(c))
		}

		if c[0] != c[geod.RingSize-1] {
			t.Errorf("%s expected a closed ring", v.id)
		}

		if d, ok := f.Properties["distance"].(float64); !ok || math.Abs(d-v.distance) > 1e-9 {
			t.Errorf("%s expected distance %f got %v", v.id, v.distance, f.Properties["distance"])
		}

		if f.Properties["phase"] != v.phase {
			t.Errorf("%s expected phase %v got %v", v.id, v.phase, f.Properties["phase"])
		}

		// small rings are close to circles.
		if p, ok := f.Properties["perimeter"].(float64); !ok || math.Abs(p-2*math.Pi*v.distance)/p > 0.01 {
			t.Errorf("%s expected perimeter close to %f got %v", v.id, 2*math.Pi*v.distance, f.Properties["perimeter"])
		}

		if a, ok := f.Properties["area"].(float64); !ok || math.Abs(a-math.Pi*v.distance*v.distance)/a > 0.01 {
			t.Errorf("%s expected area close to %f got %v", v.id, math.Pi*v.distance*v.distance, f.Properties["area"])
		}
	}
}

func TestGeodETA(t *testing.T) {
	setup(t)
	defer teardown()

	var p, s eta

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/eta?longitude=173.02&latitude=-42.69&depth=15&time=2016-11-13T11:02:56&sitelongitude=174.77&sitelatitude=-41.28&at=2016-11-13T11:02:56&phase=P",
		Content: "application/json"}, &p)

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/eta?longitude=173.02&latitude=-42.69&depth=15&time=2016-11-13T11:02:56&sitelongitude=174.77&sitelatitude=-41.28&at=2016-11-13T11:02:56",
		Content: "application/json"}, &s)

	if p.Phase != "P" || s.Phase != "S" {
		t.Errorf("expected phases P and S got %s and %s", p.Phase, s.Phase)
	}

	if p.Distance != s.Distance {
		t.Errorf("expected the same distance got %f and %f", p.Distance, s.Distance)
	}

	if math.Abs(s.ETA-s.Distance/3.55) > 1e-3 {
		t.Errorf("expected S eta %f got %f", s.Distance/3.55, s.ETA)
	}

	if math.Abs(p.ETA-p.Distance/6.10) > 1e-3 {
		t.Errorf("expected P eta %f got %f", p.Distance/6.10, p.ETA)
	}

	var late eta

	// one hour later the S wave has passed.
	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/eta?longitude=173.02&latitude=-42.69&depth=15&time=2016-11-13T11:02:56&sitelongitude=174.77&sitelatitude=-41.28&at=2016-11-13T12:02:56",
		Content: "application/json"}, &late)

	if math.Abs(late.ETA-(s.ETA-time.Hour.Seconds())) > 1e-3 {
		t.Errorf("expected eta %f got %f", s.ETA-time.Hour.Seconds(), late.ETA)
	}
}

func TestGeodIntensity(t *testing.T) {
	setup(t)
	defer teardown()

	e := geod.WGS84()
	origin := geod.Point{Longitude: 173.02, Latitude: -42.69}

	site, err := e.Direct(origin, 45.0, 50.0)
	if err != nil {
		t.Fatal(err)
	}

	in := []struct {
		id        string
		url       string
		mmi       int
		raw       float64
		siteClass string
	}{
		{id: wt.L(), url: fmt.Sprintf("/geod/intensity?longitude=173.02&latitude=-42.69&magnitude=7.8&sitelongitude=%f&sitelatitude=%f", site.Longitude, site.Latitude),
			mmi: 7, raw: 7.213908529692679, siteClass: "R"},
		{id: wt.L(), url: "/geod/intensity?longitude=173.02&latitude=-42.69&magnitude=9&sitelongitude=173.02&sitelatitude=-42.69",
			mmi: 10, raw: 9.510121463895786, siteClass: "R"},
	}

	for _, v := range in {
		var i intensity

		getJSON(t, wt.Request{ID: v.id, URL: v.url, Content: "application/json"}, &i)

		if i.MMI != v.mmi {
			t.Errorf("%s expected mmi %d got %d", v.id, v.mmi, i.MMI)
		}

		// site coordinates in the query are rounded to about 0.1 m.
		if math.Abs(i.Intensity-v.raw) > 1e-4 {
			t.Errorf("%s expected intensity %f got %f", v.id, v.raw, i.Intensity)
		}

		if i.SiteClass != v.siteClass {
			t.Errorf("%s expected site class %s got %s", v.id, v.siteClass, i.SiteClass)
		}
	}

	var rock, soil intensity

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/intensity?longitude=173.02&latitude=-42.69&magnitude=6&sitelongitude=174.77&sitelatitude=-41.28", Content: "application/json"}, &rock)
	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/intensity?longitude=173.02&latitude=-42.69&magnitude=6&sitelongitude=174.77&sitelatitude=-41.28&siteclass=s", Content: "application/json"}, &soil)

	if rock.Distance != soil.Distance {
		t.Errorf("expected the same distance got %f and %f", rock.Distance, soil.Distance)
	}

	if soil.SiteClass != "S" || soil.Intensity <= rock.Intensity {
		t.Errorf("expected stronger shaking on soil got %s %f rock %f", soil.SiteClass, soil.Intensity, rock.Intensity)
	}
}

func TestGeodLocality(t *testing.T) {
	setup(t)
	defer teardown()

	var l locality

	getJSON(t, wt.Request{ID: wt.L(), URL: "/geod/locality?longitude=174.77&latitude=-41.28", Content: "application/json"}, &l)

	if l.Name != "Wellington" {
		t.Errorf("expected Wellington got %s", l.Name)
	}

	if l.Description != "Within 5 km of Wellington" {
		t.Errorf("expected Within 5 km of Wellington got %s", l.Description)
	}
}

func TestSohEllipsoid(t *testing.T) {
	setup(t)
	defer teardown()

	wgs84 := ellipsoid
	defer func() { ellipsoid = wgs84 }()

	var err error

	ellipsoid, err = geod.NewEllipsoid(6371000.0, 0.0)
	if err != nil {
		t.Fatal(err)
	}

	r := wt.Request{ID: wt.L(), URL: "/soh", Content: "text/html; charset=utf-8"}

	if _, err = r.Do(testServer.URL); err != nil {
		t.Error(err)
	}

	ellipsoid = nil

	r = wt.Request{ID: wt.L(), URL: "/soh", Content: "text/plain; charset=utf-8", Status: http.StatusServiceUnavailable}

	if _, err = r.Do(testServer.URL); err != nil {
		t.Error(err)
	}
}
