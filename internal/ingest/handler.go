package ingest

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/messaging"
)

// Handler accepts click events over HTTP and hands them to the stream.
// Persistence happens asynchronously in the consumer, so ingestion stays
// fast and the endpoint only fails when the stream itself is unavailable.
type Handler struct {
	publish messaging.Publish[analytics.ClickEvent]
	store   ClickStore
	logger  *zap.Logger
}

// NewHandler creates a click ingestion handler.
func NewHandler(publish messaging.Publish[analytics.ClickEvent], store ClickStore, logger *zap.Logger) *Handler {
	return &Handler{
		publish: publish,
		store:   store,
		logger:  logger,
	}
}

// IngestClick accepts one click event and queues it for persistence.
func (h *Handler) IngestClick(ctx context.Context, req *IngestClickRequest) (*IngestClickResponse, error) {
	event := req.Body
	if err := h.publish(&event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("code", event.Code),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return nil, huma.Error500InternalServerError("failed to record click event")
	}

	resp := &IngestClickResponse{}
	resp.Body.Accepted = 1
	return resp, nil
}

// IngestClickBatch accepts up to 1000 click events in one request. The batch
// is published event by event; a mid-batch failure aborts the request so the
// sender retries it whole, and the consumer's idempotent writes absorb the
// duplicates from the already published prefix.
func (h *Handler) IngestClickBatch(ctx context.Context, req *IngestBatchRequest) (*IngestBatchResponse, error) {
	for i := range req.Body {
		if err := h.publish(&req.Body[i]); err != nil {
			h.logger.Error("failed to publish click event batch",
				zap.Int("published", i),
				zap.Int("batch", len(req.Body)),
				zap.Error(err),
			)
			return nil, huma.Error500InternalServerError("failed to record click events")
		}
	}

	resp := &IngestBatchResponse{}
	resp.Body.Accepted = len(req.Body)
	return resp, nil
}

// GetStats returns the aggregated click counts for one short code.
func (h *Handler) GetStats(ctx context.Context, req *StatsRequest) (*StatsResponse, error) {
	stats, err := h.store.Stats(ctx, req.Code, req.Days)
	if err != nil {
		h.logger.Error("failed to aggregate click stats",
			zap.String("code", req.Code),
			zap.Error(err),
		)
		return nil, huma.Error500InternalServerError("failed to aggregate click stats")
	}

	return &StatsResponse{Body: *stats}, nil
}
