package store

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	"golang.org/x/image/draw"
)

const (
	avatarMaxInputBytes = 2 * 1024 * 1024
	avatarMaxDimension  = 150
	avatarMaxOutputKB   = 100
)

// ErrAvatarType is returned for files that are not PNG or JPEG images.
var ErrAvatarType = errors.New("only PNG, JPG or JPEG files are allowed")

// ErrAvatarTooLarge is returned for source files over 2MB.
var ErrAvatarTooLarge = errors.New("file must not exceed 2MB")

// PrepareAvatar reads an image file, shrinks it to fit 150x150 and compresses
// it to roughly 100KB, returning a JPEG data URI ready for the profile update
// endpoint. JPEG quality is walked down from 70 to 30 until the payload fits.
func PrepareAvatar(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > avatarMaxInputBytes {
		return "", ErrAvatarTooLarge
	}

	switch http.DetectContentType(data) {
	case "image/png", "image/jpeg":
	default:
		return "", ErrAvatarType
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	scaled := shrinkToFit(src, avatarMaxDimension, avatarMaxDimension)

	for quality := 70; quality >= 30; quality -= 10 {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("encode image: %w", err)
		}
		uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
		if len(uri) <= avatarMaxOutputKB*1024 || quality == 30 {
			return uri, nil
		}
	}
	// Unreachable: the loop always returns at quality 30.
	return "", errors.New("compress image")
}

// shrinkToFit scales the image down to fit the bounds, preserving aspect
// ratio. Images already inside the bounds are returned unchanged.
func shrinkToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	if w > h {
		h = h * maxW / w
		w = maxW
	} else {
		w = w * maxH / h
		h = maxH
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
