// Package assets loads and validates the raster and font resources used by
// mockup composition. Every image returned by the Loader is a non-zero-sized
// NRGBA buffer, so downstream stages never re-check decode state or channel
// layout.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

var (
	// ErrAssetMissing reports a path that does not exist on disk.
	ErrAssetMissing = errors.New("asset missing")
	// ErrDecode reports a file that exists but cannot be decoded as an image.
	ErrDecode = errors.New("asset not decodable")
	// ErrZeroSize reports a decoded image with zero width or height.
	ErrZeroSize = errors.New("asset has zero width or height")
)

// Mode selects the channel layout of a loaded image.
type Mode int

const (
	// WithAlpha keeps the source alpha channel, adding an opaque one when the
	// source has none.
	WithAlpha Mode = iota
	// Opaque flattens the source onto a white background.
	Opaque
)

// Loader resolves template assets from a base directory and loads images.
type Loader struct {
	dir string
	log zerolog.Logger
}

// NewLoader creates a Loader rooted at assetDir. Fonts are expected under
// assetDir/fonts, everything else directly under assetDir.
func NewLoader(assetDir string, log zerolog.Logger) *Loader {
	return &Loader{dir: assetDir, log: log}
}

// Load reads the image at path and normalizes it to NRGBA in the requested
// mode. It never panics: missing files, undecodable data and zero-sized
// images come back as wrapped sentinel errors.
func (l *Loader) Load(path string, mode Mode) (*image.NRGBA, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroSize, path)
	}

	switch mode {
	case Opaque:
		return flatten(img), nil
	default:
		return imaging.Clone(img), nil
	}
}

// AssetPath resolves a named template asset. Font files (.ttf/.otf) live in
// the fonts subdirectory. Returns ErrAssetMissing when the file is absent so
// callers can treat optional assets as skippable.
func (l *Loader) AssetPath(name string) (string, error) {
	var path string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		path = filepath.Join(l.dir, "fonts", name)
	default:
		path = filepath.Join(l.dir, name)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAssetMissing, path)
	}
	return path, nil
}

// LoadAsset is Load applied to a named asset resolved via AssetPath.
func (l *Loader) LoadAsset(name string, mode Mode) (*image.NRGBA, error) {
	path, err := l.AssetPath(name)
	if err != nil {
		return nil, err
	}
	return l.Load(path, mode)
}

// flatten composites img over a white canvas, discarding transparency.
func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), color.White)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
