package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".sportex")
	s := NewFileStore(dir)

	require.NoError(t, s.Set("token", "abc.def.ghi"))

	got, err := s.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	info, err := os.Stat(filepath.Join(dir, "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_GetMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())
	_, err := s.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte("tok\n"), 0600))

	got, err := NewFileStore(dir).Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestFileStore_Overwrite(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Set("token", "first"))
	require.NoError(t, s.Set("token", "second"))

	got, err := s.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging files must not be left behind")
}

func TestFileStore_DeleteIdempotent(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Set("token", "x"))
	require.NoError(t, s.Delete("token"))
	require.NoError(t, s.Delete("token"))

	_, err := s.Get("token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_InvalidKey(t *testing.T) {
	s := NewFileStore(t.TempDir())
	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.Error(t, s.Set(key, "v"), "key %q", key)
	}
}

func TestSlot_RoundTripAcrossStores(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Scope(NewFileStore(dir), "token").Save("persisted"))

	// A fresh store over the same directory stands in for a process restart.
	got, err := Scope(NewFileStore(dir), "token").Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSlot_EmptyAndClear(t *testing.T) {
	slot := Scope(NewMemoryStore(), "token")

	got, err := slot.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, slot.Save("v"))
	require.NoError(t, slot.Save(""))
	got, err = slot.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, slot.Save("v"))
	require.NoError(t, slot.Clear())
	got, err = slot.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
