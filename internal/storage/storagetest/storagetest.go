// Package storagetest holds the behaviour every storage.Store backend must share.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
)

// Run exercises a fresh store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "cart:v1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "cart:v1", `[{"key":"p1::"}]`))

		got, err := s.Get(ctx, "cart:v1")
		require.NoError(t, err)
		assert.Equal(t, `[{"key":"p1::"}]`, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "token", "a1"))
		require.NoError(t, s.Set(ctx, "token", "a2"))

		got, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "a2", got)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "rt", ""))

		got, err := s.Get(ctx, "rt")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "auth", "{}"))
		require.NoError(t, s.Delete(ctx, "auth"))

		_, err := s.Get(ctx, "auth")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete missing key", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, "never-written"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "token", "access"))
		require.NoError(t, s.Set(ctx, "rt", "refresh"))

		token, err := s.Get(ctx, "token")
		require.NoError(t, err)
		rt, err := s.Get(ctx, "rt")
		require.NoError(t, err)
		assert.Equal(t, "access", token)
		assert.Equal(t, "refresh", rt)
	})

	t.Run("unicode value", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "lastViewedProducts", `[{"name":"Keten Gömlek İpek"}]`))

		got, err := s.Get(ctx, "lastViewedProducts")
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"Keten Gömlek İpek"}]`, got)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Set(ctx, fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i)))
			}()
		}
		wg.Wait()

		for i := range 10 {
			got, err := s.Get(ctx, fmt.Sprintf("k%d", i))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("v%d", i), got)
		}
	})
}
