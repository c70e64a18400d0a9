// Package api implements the service's HTTP surface.
//
// New(store, ingester, opts) returns an http.Handler that serves:
//
//	GET  /up                 — plain-text liveness check
//	GET  /properties         — all records in the current generation (JSON array)
//	GET  /properties/{id}    — single record; 404 if the id is not in the generation
//	POST /properties/upload  — multipart CSV upload (field "file"); replaces everything
//	GET  /stats              — generation number, record count, last ingest time
//
// Upload failures are reported as structured JSON client errors: 400 with the
// offending row number for bad rows, 400 for malformed CSV, 413 when the body
// exceeds the configured size cap. A failed upload never changes the store.
//
// Routing uses gorilla/mux; unknown paths get a JSON 404 and mismatched
// methods a 405. JSON types are defined in types.go.
package api
