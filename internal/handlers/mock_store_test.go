package handlers_test

import (
	"context"
	"errors"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
	"github.com/Priya00300/url-shortener-devops/internal/store"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// mockRepo is a MemoryStore with per-method error injection for the
// handler error paths.
type mockRepo struct {
	*store.MemoryStore

	insertErr        error
	findErr          error
	existsErr        error
	existsAlwaysTrue bool
	deactivateErr    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{MemoryStore: store.NewMemoryStore()}
}

func (m *mockRepo) Insert(ctx context.Context, link *shortener.ShortLink) error {
	if m.insertErr != nil {
		return m.insertErr
	}

	return m.MemoryStore.Insert(ctx, link)
}

func (m *mockRepo) FindByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}

	return m.MemoryStore.FindByCode(ctx, code)
}

func (m *mockRepo) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}

	if m.existsAlwaysTrue {
		return true, nil
	}

	return m.MemoryStore.Exists(ctx, code)
}

func (m *mockRepo) Deactivate(ctx context.Context, code shortener.Code) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}

	return m.MemoryStore.Deactivate(ctx, code)
}
