package ingest_test

import (
	"context"
	"sync"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
)

// mockClickStore is a scriptable in-memory ClickStore for handler and
// consumer tests.
type mockClickStore struct {
	mu        sync.Mutex
	recorded  []*analytics.ClickEvent
	recordErr error

	stats     *analytics.LinkStats
	statsErr  error
	statsCode string
	statsDays int
}

func (m *mockClickStore) RecordClick(_ context.Context, event *analytics.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordErr != nil {
		return m.recordErr
	}

	m.recorded = append(m.recorded, event)
	return nil
}

func (m *mockClickStore) Stats(_ context.Context, code string, days int) (*analytics.LinkStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statsCode = code
	m.statsDays = days

	if m.statsErr != nil {
		return nil, m.statsErr
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &analytics.LinkStats{Code: code}, nil
}

func (m *mockClickStore) recordedEvents() []*analytics.ClickEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*analytics.ClickEvent(nil), m.recorded...)
}
