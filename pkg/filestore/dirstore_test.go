package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore_WriteReadRemove(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("2026-01-15-fika.md", "content"))

	content, found, err := store.Read("2026-01-15-fika.md")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "content", content)

	exists, err := store.Exists("2026-01-15-fika.md")
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err := store.Remove("2026-01-15-fika.md")
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing again is not an error, just a no-op.
	removed, err = store.Remove("2026-01-15-fika.md")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDirStore_ReadMissingKey(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	_, found, err := store.Read("nope.md")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDirStore_ListKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write("b.md", "b"))
	require.NoError(t, store.Write("a.md", "a"))
	// Hidden files and subdirectories are not keys.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	keys, err := store.ListKeys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, keys)
}

func TestDirStore_NoLocation(t *testing.T) {
	store, err := NewDirStore("")
	require.NoError(t, err)

	_, err = store.ListKeys()
	assert.ErrorIs(t, err, ErrNoLocation)
	_, _, err = store.Read("a.md")
	assert.ErrorIs(t, err, ErrNoLocation)
	err = store.Write("a.md", "x")
	assert.ErrorIs(t, err, ErrNoLocation)
	_, err = store.Remove("a.md")
	assert.ErrorIs(t, err, ErrNoLocation)
	_, err = store.Exists("a.md")
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestDirStore_RejectsTraversalKeys(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape.md", "sub/dir.md", "", ".hidden.md"} {
		err := store.Write(key, "x")
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestDirStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "events")
	_, err := NewDirStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
