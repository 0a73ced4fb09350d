package store

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestPrepareAvatar_ShrinksLargeImage(t *testing.T) {
	path := writePNG(t, 600, 400)

	uri, err := PrepareAvatar(path)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	b := img.Bounds()
	assert.LessOrEqual(t, b.Dx(), 150)
	assert.LessOrEqual(t, b.Dy(), 150)
	assert.LessOrEqual(t, len(uri), 100*1024)
}

func TestPrepareAvatar_SmallImageKeepsSize(t *testing.T) {
	path := writePNG(t, 40, 30)

	uri, err := PrepareAvatar(path)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	b := img.Bounds()
	assert.Equal(t, 40, b.Dx())
	assert.Equal(t, 30, b.Dy())
}

func TestPrepareAvatar_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.txt")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0o600))

	_, err := PrepareAvatar(path)
	assert.ErrorIs(t, err, ErrAvatarType)
}

func TestPrepareAvatar_RejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	require.NoError(t, os.WriteFile(path, make([]byte, 2*1024*1024+1), 0o600))

	_, err := PrepareAvatar(path)
	assert.ErrorIs(t, err, ErrAvatarTooLarge)
}

func TestPrepareAvatar_MissingFile(t *testing.T) {
	_, err := PrepareAvatar(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
