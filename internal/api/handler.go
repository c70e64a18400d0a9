package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/taylormck/japanese-properties-api/internal/config"
	"github.com/taylormck/japanese-properties-api/internal/ingest"
	"github.com/taylormck/japanese-properties-api/internal/metrics"
	"github.com/taylormck/japanese-properties-api/internal/store"
)

// uploadField is the multipart form field the CSV file is read from.
const uploadField = "file"

// Options carries the optional collaborators a Handler can use.
type Options struct {
	// MaxUploadBytes caps the upload request body. Zero applies the config default.
	MaxUploadBytes int64

	// UploadAuth wraps the upload route. Nil leaves it open.
	UploadAuth func(http.Handler) http.Handler

	// Metrics, when set, counts every request the router serves.
	Metrics *metrics.Metrics
}

// Handler is the HTTP handler for all API endpoints. Reads go straight to the
// store; uploads run through the ingest pipeline.
type Handler struct {
	store    *store.Store
	ingester *ingest.Ingester
	maxBytes int64
	router   *mux.Router
}

// New creates a Handler wired to the given store and ingester and registers
// all routes.
func New(st *store.Store, ing *ingest.Ingester, opts Options) http.Handler {
	h := &Handler{
		store:    st,
		ingester: ing,
		maxBytes: opts.MaxUploadBytes,
		router:   mux.NewRouter(),
	}
	if h.maxBytes <= 0 {
		h.maxBytes = config.DefaultMaxUploadBytes
	}

	upload := http.Handler(http.HandlerFunc(h.upload))
	if opts.UploadAuth != nil {
		upload = opts.UploadAuth(upload)
	}

	h.router.HandleFunc("/up", h.up).Methods(http.MethodGet)
	h.router.HandleFunc("/properties", h.list).Methods(http.MethodGet)
	h.router.Handle("/properties/upload", upload).Methods(http.MethodPost)
	h.router.HandleFunc("/properties/{id:[0-9]+}", h.get).Methods(http.MethodGet)
	h.router.HandleFunc("/stats", h.stats).Methods(http.MethodGet)

	h.router.NotFoundHandler = http.HandlerFunc(notFound)
	h.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	if opts.Metrics != nil {
		m := opts.Metrics
		h.router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				m.Requests.Add(1)
				next.ServeHTTP(w, r)
			})
		})
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// up answers GET /up — liveness only, no store access.
func (h *Handler) up(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "200 OK")
}

// list answers GET /properties with the whole current generation in id order.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, h.store.All())
}

// get answers GET /properties/{id} with a single record.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid property id")
		return
	}

	p, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "property not found")
		return
	}
	jsonResp(w, http.StatusOK, p)
}

// upload answers POST /properties/upload. The CSV arrives as multipart form
// data under the "file" field; on success the whole store generation is
// replaced and the record count returned.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			jsonErr(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", h.maxBytes))
		case errors.Is(err, http.ErrMissingFile):
			jsonErr(w, http.StatusBadRequest, "multipart form field \"file\" is required")
		default:
			jsonErr(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		}
		return
	}
	defer file.Close()

	res, err := h.ingester.Ingest(file)
	if err != nil {
		var (
			rowErr *ingest.RowError
			malErr *ingest.MalformedError
		)
		switch {
		case errors.As(err, &rowErr):
			jsonErr(w, http.StatusBadRequest, rowErr.Error())
		case errors.As(err, &malErr):
			jsonErr(w, http.StatusBadRequest, malErr.Error())
		default:
			jsonErr(w, http.StatusInternalServerError, "ingest failed")
		}
		return
	}

	jsonResp(w, http.StatusOK, UploadResponse{
		Count:      res.Count,
		Generation: res.Generation,
	})
}

// stats answers GET /stats with generation provenance.
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	gen, at := h.store.Generation()
	resp := StatsResponse{
		Records:    h.store.Len(),
		Generation: gen,
	}
	if gen > 0 {
		resp.LastIngest = at.UTC().Format(time.RFC3339)
	}
	jsonResp(w, http.StatusOK, resp)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	jsonErr(w, http.StatusNotFound, "the page you're looking for doesn't exist")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
