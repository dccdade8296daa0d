package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/ingest"
)

// NoopClickStore is a log-only implementation of ingest.ClickStore for
// running the analytics service without PostgreSQL.
type NoopClickStore struct {
	logger *zap.Logger
}

// NewNoopClickStore creates a log-only click store.
func NewNoopClickStore(logger *zap.Logger) *NoopClickStore {
	return &NoopClickStore{logger: logger}
}

func (n *NoopClickStore) RecordClick(_ context.Context, event *analytics.ClickEvent) error {
	n.logger.Info("click event received",
		zap.String("code", event.Code),
		zap.String("eventId", event.EventID),
		zap.Time("occurredAt", event.OccurredAt),
		zap.String("referer", event.Referer),
	)

	return nil
}

func (n *NoopClickStore) Stats(_ context.Context, code string, _ int) (*analytics.LinkStats, error) {
	return &analytics.LinkStats{Code: code}, nil
}

// Compile-time check.
var _ ingest.ClickStore = (*NoopClickStore)(nil)
