package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/taylormck/japanese-properties-api/internal/metrics"
	"github.com/taylormck/japanese-properties-api/internal/property"
	"github.com/taylormck/japanese-properties-api/internal/store"
)

// BaseID is the id assigned to the first data row. Ids count up from here in
// row order, so row N of the file becomes record BaseID+N-1.
const BaseID uint64 = 1

// Result summarizes one successful ingest.
type Result struct {
	Count      int
	Generation uint64
}

// Ingester parses CSV uploads into complete store generations.
type Ingester struct {
	store   *store.Store
	metrics *metrics.Metrics // nil disables counters
	notify  func(Result)     // nil disables notifications
}

// New creates an Ingester writing to st. m and notify may be nil.
// notify is called synchronously after every successful ingest.
func New(st *store.Store, m *metrics.Metrics, notify func(Result)) *Ingester {
	return &Ingester{store: st, metrics: m, notify: notify}
}

// Ingest reads r as comma-separated UTF-8 with a header row, validates every
// data row against the property column schema, and atomically replaces the
// store's generation with the parsed records.
//
// Any failure — unreadable header, header/schema mismatch, or a single bad
// row — aborts the whole ingest and leaves the store untouched. A header-only
// file is a valid empty replacement and clears the store.
func (ing *Ingester) Ingest(r io.Reader) (*Result, error) {
	records, err := parse(r)
	if err != nil {
		if ing.metrics != nil {
			ing.metrics.IngestFailures.Add(1)
		}
		return nil, err
	}

	gen := ing.store.ReplaceAll(records)
	res := Result{Count: len(records), Generation: gen}

	if ing.metrics != nil {
		ing.metrics.IngestRuns.Add(1)
		ing.metrics.RecordsIngested.Add(uint64(res.Count))
	}

	slog.Info("ingest: generation replaced",
		"records", res.Count,
		"generation", res.Generation,
	)

	if ing.notify != nil {
		ing.notify(res)
	}
	return &res, nil
}

// parse builds the full candidate record set. The store is not involved;
// callers commit the result only when parse succeeds as a whole.
func parse(r io.Reader) ([]property.Property, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(property.Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedError{Reason: "missing header row"}
	}
	if err != nil {
		return nil, &MalformedError{Reason: readReason(err)}
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	records := make([]property.Property, 0, 64)
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Reason: readReason(err)}
		}

		p := property.Property{ID: BaseID + uint64(row) - 1}
		for i, col := range property.Columns {
			col.Set(&p, fields[i])
		}
		records = append(records, p)
	}
	return records, nil
}

// checkHeader verifies the uploaded header against the column schema.
// Names are compared case-insensitively with surrounding whitespace ignored.
func checkHeader(header []string) error {
	for i, col := range property.Columns {
		got := strings.TrimSpace(header[i])
		if !strings.EqualFold(got, col.Name) {
			return &MalformedError{
				Reason: fmt.Sprintf("header column %d is %q, want %q", i+1, got, col.Name),
			}
		}
	}
	return nil
}

// readReason strips the csv package's line-number prefix; we report our own
// row index instead.
func readReason(err error) string {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
