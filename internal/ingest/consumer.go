package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/messaging"
)

// NewClickEventHandler returns the consumer handler that persists click
// events from the stream. Store errors propagate so the message is nacked
// and redelivered instead of being lost.
func NewClickEventHandler(store ClickStore, logger *zap.Logger) messaging.Handler[analytics.ClickEvent] {
	return func(ctx context.Context, event *analytics.ClickEvent) error {
		if err := store.RecordClick(ctx, event); err != nil {
			return err
		}

		logger.Debug("click event recorded",
			zap.String("code", event.Code),
			zap.String("event_id", event.EventID),
		)

		return nil
	}
}
