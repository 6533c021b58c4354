// Package overlay locates the usable text region inside a template overlay.
//
// An overlay is a mostly-transparent PNG whose visible artwork frames an
// empty area reserved for the product title. The region detector treats any
// pixel with at least one channel above a threshold as part of the artwork,
// takes the bounding box of all such pixels, and shrinks it by an inner
// padding to keep rendered text clear of the frame.
package overlay

import (
	"errors"
	"fmt"
	"image"
)

// ErrRegionNotFound reports an overlay with no detectable text region:
// no alpha channel, no foreground pixels, or a box that collapses once the
// inner padding is applied. Callers skip title rendering and continue.
var ErrRegionNotFound = errors.New("no text region found")

// DetectTextRegion scans the overlay for foreground pixels (any of R, G, B
// or A strictly above threshold) and returns their bounding box inset by
// innerPadding on all sides.
//
// The result is a pure function of its inputs: the same overlay, threshold
// and padding always produce the same rectangle.
func DetectTextRegion(img image.Image, threshold uint8, innerPadding int) (image.Rectangle, error) {
	src, ok := toNRGBA(img)
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: overlay has no alpha channel", ErrRegionNotFound)
	}

	b := src.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[(y-b.Min.Y)*src.Stride : (y-b.Min.Y)*src.Stride+(b.Max.X-b.Min.X)*4]
		for x := 0; x < len(row); x += 4 {
			if row[x] > threshold || row[x+1] > threshold || row[x+2] > threshold || row[x+3] > threshold {
				px := b.Min.X + x/4
				if px < minX {
					minX = px
				}
				if px > maxX {
					maxX = px
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}, fmt.Errorf("%w: no pixel above threshold %d", ErrRegionNotFound, threshold)
	}

	region := image.Rect(minX, minY, maxX+1, maxY+1).Inset(innerPadding)
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: inner padding %d collapses the region", ErrRegionNotFound, innerPadding)
	}
	return region, nil
}

// toNRGBA returns a straight-alpha view of img when it carries an alpha
// channel. Opaque formats (JPEG-sourced YCbCr, Gray, RGB-like) are rejected:
// without transparency there is nothing separating frame from text area.
func toNRGBA(img image.Image) (*image.NRGBA, bool) {
	switch v := img.(type) {
	case *image.NRGBA:
		return v, true
	case *image.RGBA:
		out := image.NewNRGBA(v.Bounds())
		b := v.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.Set(x, y, v.At(x, y))
			}
		}
		return out, true
	default:
		return nil, false
	}
}
