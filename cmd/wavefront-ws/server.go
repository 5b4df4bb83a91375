package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/wavefront/internal/geod"
	"github.com/GeoNet/wavefront/internal/platform/cfg"
	"github.com/gorilla/schema"
)

var (
	decoder   = schema.NewDecoder() // decoder for URL queries.
	ellipsoid = geod.WGS84()        // immutable after main starts the server.
	LOG_EXTRA bool                  // Whether requests are logged.
)

func main() {
	LOG_EXTRA = false
	if log_extra := os.Getenv("LOG_EXTRA"); log_extra == "true" {
		LOG_EXTRA = true
	}
	weft.EnableLogRequest(LOG_EXTRA)

	e, err := cfg.EllipsoidEnv()
	if err != nil {
		log.Fatalf("error reading ellipsoid config from the environment vars: %s", err)
	}
	ellipsoid = e

	log.Printf("ellipsoid semi-major axis %.3f m flattening %.12f", ellipsoid.SemiMajorAxis(), ellipsoid.Flattening())

	log.Println("starting server")
	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 1 * time.Minute,
	}
	log.Fatal(server.ListenAndServe())
}
