package shortener_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/shortener"
)

func newTestAllocator(repo *mockRepo) *shortener.Allocator {
	return shortener.NewAllocator(shortener.NewSeededCodeSpace(1), repo, zap.NewNop())
}

func TestAllocator_Allocate_CustomAlias(t *testing.T) {
	t.Run("reserves a free alias lowercased", func(t *testing.T) {
		repo := newMockRepo()
		alloc := newTestAllocator(repo)

		got, err := alloc.Allocate(context.Background(), "MyPage")

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("mypage"), got.Code)
		assert.True(t, got.Custom)
	})

	t.Run("rejects reserved words even when available", func(t *testing.T) {
		repo := newMockRepo()
		alloc := newTestAllocator(repo)

		for _, word := range []string{"api", "admin", "www", "health"} {
			_, err := alloc.Allocate(context.Background(), word)

			assert.ErrorIs(t, err, shortener.ErrInvalidAlias, "alias %q", word)
		}

		// Format rejection happens before any repository round trip.
		assert.Zero(t, repo.existsCalls())
	})

	t.Run("rejects malformed aliases", func(t *testing.T) {
		repo := newMockRepo()
		alloc := newTestAllocator(repo)

		for _, alias := range []string{"ab", strings.Repeat("x", 21), "has space", "under_score"} {
			_, err := alloc.Allocate(context.Background(), alias)

			assert.ErrorIs(t, err, shortener.ErrInvalidAlias, "alias %q", alias)
		}
	})

	t.Run("fails when the alias is already taken", func(t *testing.T) {
		repo := newMockRepo()
		repo.links["taken-alias"] = &shortener.ShortLink{Code: "taken-alias", Active: true}
		alloc := newTestAllocator(repo)

		_, err := alloc.Allocate(context.Background(), "Taken-Alias")

		assert.ErrorIs(t, err, shortener.ErrAliasTaken)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsFn = func(int, shortener.Code) (bool, error) {
			return false, errors.New("connection refused")
		}
		alloc := newTestAllocator(repo)

		_, err := alloc.Allocate(context.Background(), "mypage")

		require.Error(t, err)
		assert.NotErrorIs(t, err, shortener.ErrAliasTaken)
	})
}

func TestAllocator_Allocate_Generated(t *testing.T) {
	t.Run("returns the first free candidate at the default length", func(t *testing.T) {
		repo := newMockRepo()
		alloc := newTestAllocator(repo)

		got, err := alloc.Allocate(context.Background(), "")

		require.NoError(t, err)
		assert.False(t, got.Custom)
		assert.Len(t, string(got.Code), shortener.DefaultCodeLength)
		assert.Equal(t, 1, repo.existsCalls())
	})

	t.Run("returns the third candidate after two collisions without growing length", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsFn = func(call int, _ shortener.Code) (bool, error) {
			return call <= 2, nil
		}
		alloc := newTestAllocator(repo)

		got, err := alloc.Allocate(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, string(got.Code), shortener.DefaultCodeLength)
		assert.Equal(t, 3, repo.existsCalls())
	})

	t.Run("grows the length after exhausting attempts", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsFn = func(call int, _ shortener.Code) (bool, error) {
			return call <= 10, nil
		}
		alloc := newTestAllocator(repo)

		got, err := alloc.Allocate(context.Background(), "")

		require.NoError(t, err)
		assert.Len(t, string(got.Code), shortener.DefaultCodeLength+1)
		assert.Equal(t, 11, repo.existsCalls())
	})

	t.Run("gives up after ten attempts at each length", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsFn = func(int, shortener.Code) (bool, error) {
			return true, nil
		}
		alloc := newTestAllocator(repo)

		_, err := alloc.Allocate(context.Background(), "")

		assert.ErrorIs(t, err, shortener.ErrExhausted)
		assert.Equal(t, 30, repo.existsCalls())

		for i, code := range repo.existsCodes {
			want := shortener.DefaultCodeLength + i/10
			assert.Len(t, string(code), want, "candidate %d", i)
		}
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := newMockRepo()
		repo.existsFn = func(int, shortener.Code) (bool, error) {
			return false, errors.New("connection refused")
		}
		alloc := newTestAllocator(repo)

		_, err := alloc.Allocate(context.Background(), "")

		require.Error(t, err)
		assert.NotErrorIs(t, err, shortener.ErrExhausted)
	})
}
