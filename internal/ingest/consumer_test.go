package ingest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/ingest"
)

func TestClickEventHandler(t *testing.T) {
	t.Run("persists consumed events", func(t *testing.T) {
		store := &mockClickStore{}
		handle := ingest.NewClickEventHandler(store, zap.NewNop())

		event := clickEvent("abc123")
		err := handle(context.Background(), &event)

		require.NoError(t, err)
		recorded := store.recordedEvents()
		require.Len(t, recorded, 1)
		assert.Equal(t, "abc123", recorded[0].Code)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockClickStore{recordErr: errMock}
		handle := ingest.NewClickEventHandler(store, zap.NewNop())

		event := clickEvent("abc123")
		err := handle(context.Background(), &event)

		assert.ErrorIs(t, err, errMock)
		assert.Empty(t, store.recordedEvents())
	})
}
