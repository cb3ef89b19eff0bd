package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := s.Load(context.Background(), UsersCollection)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, PostsCollection, []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Save(ctx, PostsCollection, []byte(`[{"id":"2"}]`)))

	data, err := s.Load(ctx, PostsCollection)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "posts.json", entries[0].Name())
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
