package store

import (
	"context"
	"sync"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository,
// used in tests and for running the server without PostgreSQL.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.Code]*shortener.ShortLink
}

// NewMemoryStore creates an empty in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.Code]*shortener.ShortLink),
	}
}

func (m *MemoryStore) Insert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[link.Code]; ok {
		return &shortener.UniqueViolationError{Code: link.Code}
	}

	clone := *link
	m.links[link.Code] = &clone

	return nil
}

func (m *MemoryStore) FindByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	clone := *link

	return &clone, nil
}

func (m *MemoryStore) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.links[code]

	return ok, nil
}

func (m *MemoryStore) IncrementClickCount(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.ClickCount++

	return nil
}

func (m *MemoryStore) Deactivate(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.Active = false

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
