package metrics

import (
	"net/http"
	"sync/atomic"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/taylormck/japanese-properties-api/internal/store"
)

// Metrics holds the service's counters. All fields are safe for concurrent
// use; callers increment them directly.
type Metrics struct {
	// IngestRuns counts ingests that replaced the store generation.
	IngestRuns atomic.Uint64

	// IngestFailures counts ingests rejected for malformed input.
	IngestFailures atomic.Uint64

	// RecordsIngested counts rows accepted across all successful ingests.
	RecordsIngested atomic.Uint64

	// Requests counts HTTP requests served by the API router.
	Requests atomic.Uint64
}

// New creates a zeroed Metrics.
func New() *Metrics {
	return &Metrics{}
}

// Handler returns the /metrics endpoint. Store gauges (record count, current
// generation) are read live from st on each scrape.
func (m *Metrics) Handler(st *store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		gen, _ := st.Generation()
		families := []*dto.MetricFamily{
			counter("properties_ingest_runs_total",
				"Number of ingests that replaced the store generation.",
				float64(m.IngestRuns.Load())),
			counter("properties_ingest_failures_total",
				"Number of ingests rejected for malformed CSV input.",
				float64(m.IngestFailures.Load())),
			counter("properties_records_ingested_total",
				"Rows accepted across all successful ingests.",
				float64(m.RecordsIngested.Load())),
			counter("properties_http_requests_total",
				"HTTP requests served by the API router.",
				float64(m.Requests.Load())),
			gauge("properties_store_records",
				"Records in the current generation.",
				float64(st.Len())),
			gauge("properties_store_generation",
				"Current store generation number.",
				float64(gen)),
		}

		format := expfmt.NewFormat(expfmt.TypeTextPlain)
		w.Header().Set("Content-Type", string(format))
		enc := expfmt.NewEncoder(w, format)
		for _, mf := range families {
			if err := enc.Encode(mf); err != nil {
				return
			}
		}
	})
}

func counter(name, help string, v float64) *dto.MetricFamily {
	t := dto.MetricType_COUNTER
	return &dto.MetricFamily{
		Name:   &name,
		Help:   &help,
		Type:   &t,
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: &v}}},
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	t := dto.MetricType_GAUGE
	return &dto.MetricFamily{
		Name:   &name,
		Help:   &help,
		Type:   &t,
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: &v}}},
	}
}
