package ingest

import (
	"context"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
)

// ClickStore persists click events and answers aggregation queries over them.
type ClickStore interface {
	// RecordClick stores one click event. Recording the same event ID twice
	// must be idempotent so redelivered messages do not inflate counts.
	RecordClick(ctx context.Context, event *analytics.ClickEvent) error

	// Stats aggregates the clicks recorded for a code, including a daily
	// breakdown covering the most recent days.
	Stats(ctx context.Context, code string, days int) (*analytics.LinkStats, error)
}
