package handlers_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/analytics"
	"github.com/Priya00300/url-shortener-devops/internal/handlers"
	"github.com/Priya00300/url-shortener-devops/internal/shortener"
	"github.com/Priya00300/url-shortener-devops/internal/store"
)

func noopDispatch() analytics.DispatchFunc {
	return func(_ *analytics.ClickEvent) {}
}

// recordingDispatch captures dispatched click events.
type recordingDispatch struct {
	mu     sync.Mutex
	events []*analytics.ClickEvent
}

func (r *recordingDispatch) dispatch(event *analytics.ClickEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingDispatch) dispatched() []*analytics.ClickEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*analytics.ClickEvent(nil), r.events...)
}

// stubStats is a scriptable StatsClient.
type stubStats struct {
	stats  *analytics.LinkStats
	err    error
	called bool
}

func (s *stubStats) Stats(_ context.Context, code string) (*analytics.LinkStats, error) {
	s.called = true

	if s.err != nil {
		return nil, s.err
	}
	if s.stats != nil {
		return s.stats, nil
	}
	return &analytics.LinkStats{Code: code}, nil
}

func newTestHandler(repo shortener.Repository) *handlers.LinkHandler {
	return newTestHandlerWith(repo, noopDispatch(), &stubStats{})
}

func newTestHandlerWith(repo shortener.Repository, dispatch analytics.DispatchFunc, stats handlers.StatsClient) *handlers.LinkHandler {
	logger := zap.NewNop()
	space := shortener.NewSeededCodeSpace(1)
	alloc := shortener.NewAllocator(space, repo, logger)
	service := shortener.NewService(alloc, repo, logger)
	resolver := shortener.NewResolver(repo, dispatch, logger)

	return handlers.NewLinkHandler(service, resolver, stats, "http://localhost:8888", logger)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, want, statusErr.GetStatus())
}

func seedLink(t *testing.T, repo shortener.Repository, link *shortener.ShortLink) {
	t.Helper()
	require.NoError(t, repo.Insert(context.Background(), link))
}

func activeLink(code shortener.Code) *shortener.ShortLink {
	return &shortener.ShortLink{
		Code:      code,
		TargetURL: testURL,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
}

func TestCreateLink(t *testing.T) {
	t.Run("creates a link with a generated code", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = "https://example.com/very/long/path"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Len(t, resp.Body.Code, 6)
		assert.False(t, resp.Body.CustomAlias)
		assert.True(t, resp.Body.Active)
		assert.Equal(t, "https://example.com/very/long/path", resp.Body.TargetURL)
		assert.Contains(t, resp.Body.ShortURL, resp.Body.Code)
		assert.Equal(t, resp.Body.ShortURL, resp.Headers.Location)
	})

	t.Run("creates a link with a custom alias", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL
		req.Body.CustomAlias = "My-Launch"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "my-launch", resp.Body.Code)
		assert.True(t, resp.Body.CustomAlias)
		assert.Equal(t, "http://localhost:8888/my-launch", resp.Body.ShortURL)
	})

	t.Run("stores the expiry", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		expires := time.Now().UTC().Add(48 * time.Hour)
		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL
		req.Body.ExpiresAt = &expires

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, resp.Body.ExpiresAt)
		assert.True(t, expires.Equal(*resp.Body.ExpiresAt))
	})

	t.Run("rejects an invalid target url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = "notaurl"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("rejects a malformed alias", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL
		req.Body.CustomAlias = "ab"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("returns conflict for a taken alias", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("my-launch"))
		handler := newTestHandler(memStore)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL
		req.Body.CustomAlias = "My-Launch"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("returns service unavailable when no code is free", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsAlwaysTrue = true
		handler := newTestHandler(repo)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusServiceUnavailable)
	})

	t.Run("returns 500 on repository errors", func(t *testing.T) {
		repo := newMockRepo()
		repo.insertErr = errMock
		handler := newTestHandler(repo)

		req := &handlers.CreateLinkRequest{}
		req.Body.TargetURL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusInternalServerError)
	})
}

func TestRedirect(t *testing.T) {
	t.Run("redirects to the target url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("abc123"))
		handler := newTestHandler(memStore)

		req := &handlers.RedirectRequest{Code: "abc123"}

		resp, err := handler.Redirect(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
		assert.Equal(t, testURL, resp.Headers.Location)
	})

	t.Run("dispatches a click event with the request metadata", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("abc123"))

		recorder := &recordingDispatch{}
		handler := newTestHandlerWith(memStore, recorder.dispatch, &stubStats{})

		meta := analytics.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
			Referer:   "https://referrer.com",
		}
		ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

		_, err := handler.Redirect(ctx, &handlers.RedirectRequest{Code: "abc123"})

		require.NoError(t, err)
		events := recorder.dispatched()
		require.Len(t, events, 1)
		assert.Equal(t, "abc123", events[0].Code)
		assert.Equal(t, "192.168.1.1", events[0].ClientIP)
		assert.Equal(t, "TestAgent/1.0", events[0].UserAgent)
		assert.Equal(t, "https://referrer.com", events[0].Referer)
	})

	t.Run("returns 404 when the code is unknown", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.RedirectRequest{Code: "notfound"}

		resp, err := handler.Redirect(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("returns 410 for an expired link", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		expired := activeLink("olddeal")
		past := time.Now().UTC().Add(-time.Hour)
		expired.ExpiresAt = &past
		seedLink(t, memStore, expired)
		handler := newTestHandler(memStore)

		req := &handlers.RedirectRequest{Code: "olddeal"}

		resp, err := handler.Redirect(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusGone)
	})

	t.Run("returns 410 for a deactivated link", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		removed := activeLink("removed1")
		removed.Active = false
		seedLink(t, memStore, removed)
		handler := newTestHandler(memStore)

		req := &handlers.RedirectRequest{Code: "removed1"}

		resp, err := handler.Redirect(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusGone)
	})

	t.Run("returns 500 on repository errors", func(t *testing.T) {
		repo := newMockRepo()
		repo.findErr = errMock
		handler := newTestHandler(repo)

		req := &handlers.RedirectRequest{Code: "abc123"}

		resp, err := handler.Redirect(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusInternalServerError)
	})
}

func TestGetLink(t *testing.T) {
	t.Run("returns the stored link", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		link := activeLink("abc123")
		link.ClickCount = 7
		seedLink(t, memStore, link)
		handler := newTestHandler(memStore)

		req := &handlers.GetLinkRequest{Code: "abc123"}

		resp, err := handler.GetLink(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "abc123", resp.Body.Code)
		assert.Equal(t, testURL, resp.Body.TargetURL)
		assert.Equal(t, "http://localhost:8888/abc123", resp.Body.ShortURL)
		assert.Equal(t, int64(7), resp.Body.ClickCount)
		assert.True(t, resp.Body.Active)
	})

	t.Run("returns 404 when the code is unknown", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		req := &handlers.GetLinkRequest{Code: "notfound"}

		resp, err := handler.GetLink(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestDeleteLink(t *testing.T) {
	t.Run("deactivates the link", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("abc123"))
		handler := newTestHandler(memStore)

		_, err := handler.DeleteLink(context.Background(), &handlers.DeleteLinkRequest{Code: "abc123"})
		require.NoError(t, err)

		resp, err := handler.Redirect(context.Background(), &handlers.RedirectRequest{Code: "abc123"})
		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusGone)
	})

	t.Run("returns 404 when the code is unknown", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := newTestHandler(memStore)

		resp, err := handler.DeleteLink(context.Background(), &handlers.DeleteLinkRequest{Code: "notfound"})

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestGetLinkStats(t *testing.T) {
	t.Run("returns stats from the analytics service", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("abc123"))

		last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		stats := &stubStats{stats: &analytics.LinkStats{
			Code:        "abc123",
			TotalClicks: 42,
			LastClickAt: &last,
			Daily: []analytics.DailyClicks{
				{Date: "2025-06-01", Clicks: 42},
			},
		}}
		handler := newTestHandlerWith(memStore, noopDispatch(), stats)

		req := &handlers.GetLinkStatsRequest{Code: "abc123"}

		resp, err := handler.GetLinkStats(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.Body.TotalClicks)
		require.Len(t, resp.Body.Daily, 1)
		assert.Equal(t, "2025-06-01", resp.Body.Daily[0].Date)
	})

	t.Run("returns 404 for unknown codes without asking analytics", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		stats := &stubStats{err: errMock}
		handler := newTestHandlerWith(memStore, noopDispatch(), stats)

		req := &handlers.GetLinkStatsRequest{Code: "notfound"}

		resp, err := handler.GetLinkStats(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusNotFound)
		assert.False(t, stats.called)
	})

	t.Run("returns 502 when analytics is unavailable", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seedLink(t, memStore, activeLink("abc123"))
		handler := newTestHandlerWith(memStore, noopDispatch(), &stubStats{err: errMock})

		req := &handlers.GetLinkStatsRequest{Code: "abc123"}

		resp, err := handler.GetLinkStats(context.Background(), req)

		assert.Nil(t, resp)
		assertStatus(t, err, http.StatusBadGateway)
	})
}

func TestContextWithRequestMeta(t *testing.T) {
	t.Run("adds and retrieves request metadata from context", func(t *testing.T) {
		meta := analytics.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
			Referer:   "https://referrer.com",
		}
		ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

		retrieved := handlers.RequestMetaFromContext(ctx)
		assert.Equal(t, meta, retrieved)
	})

	t.Run("returns zero metadata when none is set", func(t *testing.T) {
		retrieved := handlers.RequestMetaFromContext(context.Background())

		assert.Equal(t, analytics.RequestMeta{}, retrieved)
	})
}
