package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.SaveStream("req-1/week-1/photo.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "req-1/week-1/photo.jpg", name)
	assert.True(t, store.Exists(name))

	file, err := store.Open(name)
	require.NoError(t, err)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "jpeg-bytes", string(body))

	require.NoError(t, store.Delete(name))
	assert.False(t, store.Exists(name))
	require.NoError(t, store.Delete(name))
}

func TestFileStoreRejectsEscapingNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../outside.txt", []byte("x"))
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, err = store.Open("/etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	assert.False(t, store.Exists(""))
}

func TestNewFileStoreRequiresRoot(t *testing.T) {
	_, err := NewFileStore("  ")
	assert.Error(t, err)
}
