package ingest

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the click ingestion API on the router.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/ingest",
		Summary:       "Ingest a click event",
		Description:   "Accepts a single click event and queues it for persistence.",
		Tags:          []string{"Ingestion"},
		DefaultStatus: http.StatusAccepted,
	}, h.IngestClick)

	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/ingest/batch",
		Summary:       "Ingest a batch of click events",
		Description:   "Accepts between 1 and 1000 click events in one request.",
		Tags:          []string{"Ingestion"},
		DefaultStatus: http.StatusAccepted,
	}, h.IngestClickBatch)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/stats/{code}",
		Summary:     "Get click statistics",
		Description: "Returns total and daily click counts for a short code.",
		Tags:        []string{"Statistics"},
	}, h.GetStats)
}
