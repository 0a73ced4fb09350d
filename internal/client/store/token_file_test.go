package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_MissingFile(t *testing.T) {
	f := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.txt")}

	tok, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	f := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.txt")}

	require.NoError(t, f.Save("abc123"))

	tok, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, f.Clear())

	tok, err = f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileTokenStore_ClearMissingFile(t *testing.T) {
	f := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.txt")}
	assert.NoError(t, f.Clear())
}
