package main

import (
	"github.com/GeoNet/wavefront/internal/geod"
)

// GeoJSON (RFC 7946) types for the responses.  Coordinates are [lon, lat].

type feature struct {
	Type       string                 `json:"type"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func pointFeature(p geod.Point, properties map[string]interface{}) feature {
	return feature{
		Type: "Feature",
		Geometry: geometry{
			Type:        "Point",
			Coordinates: [2]float64{p.Longitude, p.Latitude},
		},
		Properties: properties,
	}
}

func lineStringFeature(w geod.WavePoints, properties map[string]interface{}) feature {
	c := make([][2]float64, len(w))
	for i, p := range w {
		c[i] = [2]float64{p.Longitude, p.Latitude}
	}

	return feature{
		Type: "Feature",
		Geometry: geometry{
			Type:        "LineString",
			Coordinates: c,
		},
		Properties: properties,
	}
}
