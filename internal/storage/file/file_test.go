package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return newTestStore(t) })
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".storefront")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "cart:v1", `[]`))

	s2, err := New(dir)
	require.NoError(t, err)
	got, err := s2.Get(ctx, "cart:v1")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestStore_KeysCannotEscapeDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "store")
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../escape", "x"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the store directory exists at the root")
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "token", "a1"))
	require.NoError(t, s.Set(ctx, "token", "a2"))
	require.NoError(t, s.Ping(ctx))

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "token.val", entries[0].Name())
}

func TestStore_EmptyKey(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "", "v"))
}
