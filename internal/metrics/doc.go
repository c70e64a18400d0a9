// Package metrics tracks ingest and request counters and exposes them in the
// Prometheus text format on /metrics. Counters are plain atomics; the handler
// builds the metric families on each scrape and encodes them with expfmt, so
// there is no background collection machinery.
package metrics
