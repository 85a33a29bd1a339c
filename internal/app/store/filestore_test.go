package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "abc123", "https://first.example"))
	stored, err := fs.SetIfAbsent(ctx, "def456", "https://second.example")
	require.NoError(t, err)
	require.True(t, stored)
	require.NoError(t, fs.Set(ctx, "abc123", "https://overwritten.example"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://overwritten.example", got)

	got, err = reopened.Get(ctx, "def456")
	require.NoError(t, err)
	assert.Equal(t, "https://second.example", got)

	_, err = reopened.Get(ctx, "doesnotexist")
	assert.ErrorIs(t, err, service.ErrURLNotFound)
}

func TestFileStore_SkipsBrokenLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	data := `{"key":"abc123","url":"https://example.com"}
{"key":"broken","url":
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := fs.Get(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)

	_, err = fs.Get(context.Background(), "broken")
	assert.ErrorIs(t, err, service.ErrURLNotFound)
}

func TestFileStore_AppendAfterTornTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	data := `{"key":"aaaaaa","url":"https://first.example"}
{"key":"bbbb`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	ctx := context.Background()

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "cccccc", "docker.com"))
	stored, err := fs.SetIfAbsent(ctx, "dddddd", "https://second.example")
	require.NoError(t, err)
	require.True(t, stored)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	for key, want := range map[string]string{
		"aaaaaa": "https://first.example",
		"cccccc": "docker.com",
		"dddddd": "https://second.example",
	} {
		got, err := reopened.Get(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got)
	}

	_, err = reopened.Get(ctx, "bbbb")
	assert.ErrorIs(t, err, service.ErrURLNotFound)
}

func TestFileStore_SetIfAbsentKeepsExisting(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, fs.Set(ctx, "k", "https://first.example"))
	stored, err := fs.SetIfAbsent(ctx, "k", "https://second.example")
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := fs.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "https://first.example", got)
}

func TestFileStore_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "missing", "storage.json"))
	require.NoError(t, err)

	err = fs.Set(context.Background(), "k", "https://example.com")
	assert.ErrorIs(t, err, service.ErrStoreUnavailable)

	_, err = fs.Get(context.Background(), "k")
	assert.ErrorIs(t, err, service.ErrURLNotFound)
}
