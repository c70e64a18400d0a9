// Package ingest converts uploaded CSV bytes into a new store generation.
//
// The pipeline is all-or-nothing: the full candidate record set is parsed and
// validated before the store is touched, so a failed upload leaves the
// previous generation fully intact. Ids are assigned sequentially from
// BaseID in row order and never come from the CSV itself.
//
// Failures fall into two kinds: *MalformedError when the CSV is structurally
// unreadable (missing or mismatched header), and *RowError when a specific
// data row cannot be parsed. Both are surfaced to the HTTP boundary as
// client errors.
//
// Watch re-runs the pipeline whenever a configured CSV file changes on disk,
// so a deployment can feed the service by dropping files instead of calling
// the upload endpoint.
package ingest
