package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutGetDelete(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("1.mp3", strings.NewReader("audio-bytes")))

	exists, err := store.Exists("1.mp3")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Get("1.mp3")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "audio-bytes", string(data))

	require.NoError(t, store.Delete("1.mp3"))
	exists, err = store.Exists("1.mp3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFSStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("missing.mp3"), "Отсутствие файла не должно быть ошибкой")
}

func TestFSStore_Put_EmptyKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Put("", strings.NewReader("x")))
}

func TestFSStore_Put_Overwrite(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("2.mp3", strings.NewReader("old")))
	require.NoError(t, store.Put("2.mp3", strings.NewReader("new")))

	rc, err := store.Get("2.mp3")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "new", string(data))
}
