// Package property defines the Property record served by the API and the
// CSV column schema it is parsed from.
//
// A Property is one Japanese real-estate listing. All descriptive fields are
// kept verbatim as strings — prices like "3,480万円" and areas like "120.5m²"
// are display values, not numbers. The id is assigned during ingestion, never
// taken from the CSV.
//
// Columns is the authoritative, ordered CSV schema. The ingest pipeline
// validates uploaded headers against it and fails fast on any mismatch.
package property
