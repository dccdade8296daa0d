package shortener_test

import (
	"context"
	"sync"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

// mockRepo is a configurable in-memory test double for the link repository.
// The optional existsFn and insertFn hooks take precedence over the map,
// receiving a 1-based call counter for scripting collision sequences.
type mockRepo struct {
	mu    sync.Mutex
	links map[shortener.Code]*shortener.ShortLink

	existsFn    func(call int, code shortener.Code) (bool, error)
	existsCodes []shortener.Code

	insertFn    func(call int, link *shortener.ShortLink) error
	insertCalls int

	findErr       error
	incrementErr  error
	incremented   chan shortener.Code
	deactivateErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{links: make(map[shortener.Code]*shortener.ShortLink)}
}

func (m *mockRepo) Insert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	if m.insertFn != nil {
		return m.insertFn(m.insertCalls, link)
	}

	if _, ok := m.links[link.Code]; ok {
		return &shortener.UniqueViolationError{Code: link.Code}
	}
	m.links[link.Code] = link

	return nil
}

func (m *mockRepo) FindByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return link, nil
}

func (m *mockRepo) Exists(_ context.Context, code shortener.Code) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.existsCodes = append(m.existsCodes, code)
	if m.existsFn != nil {
		return m.existsFn(len(m.existsCodes), code)
	}

	_, ok := m.links[code]
	return ok, nil
}

func (m *mockRepo) IncrementClickCount(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	if link, ok := m.links[code]; ok && m.incrementErr == nil {
		link.ClickCount++
	}
	m.mu.Unlock()

	if m.incremented != nil {
		m.incremented <- code
	}

	return m.incrementErr
}

func (m *mockRepo) Deactivate(_ context.Context, code shortener.Code) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}
	link.Active = false

	return nil
}

func (m *mockRepo) existsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.existsCodes)
}
