package api

import (
	"time"

	"github.com/taylormck/japanese-properties-api/internal/property"
	"github.com/taylormck/japanese-properties-api/internal/store"
)

// UploadResponse is the payload for a successful POST /properties/upload.
type UploadResponse struct {
	Count      int    `json:"count"`
	Generation uint64 `json:"generation"`
}

// StatsResponse is the payload for GET /stats.
type StatsResponse struct {
	Records    int    `json:"records"`
	Generation uint64 `json:"generation"`
	LastIngest string `json:"last_ingest,omitempty"` // RFC3339; empty before first ingest
}

// SnapshotResponse is the full current generation, as broadcast on the
// WebSocket stream.
type SnapshotResponse struct {
	Generation  uint64              `json:"generation"`
	Records     int                 `json:"records"`
	Properties  []property.Property `json:"properties"`
	GeneratedAt string              `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// BuildSnapshot assembles a SnapshotResponse from the store's current state.
// Shared with the WebSocket hub.
func BuildSnapshot(st *store.Store) SnapshotResponse {
	gen, _ := st.Generation()
	props := st.All()
	return SnapshotResponse{
		Generation:  gen,
		Records:     len(props),
		Properties:  props,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
