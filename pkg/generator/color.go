// color.go — Color parsing and solid canvas creation.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// ParseColor parses "#rrggbb" or "#rrggbbaa" into channel values. A missing
// alpha component defaults to fully opaque.
func ParseColor(s string) (r, g, b, a uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, 0, 0, 0, fmt.Errorf("invalid color %q: expected 6 or 8 hex digits", s)
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid red channel in %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid green channel in %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid blue channel in %q: %w", s, err)
	}

	av := uint64(255)
	if len(hex) == 8 {
		av, err = strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid alpha channel in %q: %w", s, err)
		}
	}

	return uint8(rv), uint8(gv), uint8(bv), uint8(av), nil
}

// ParseHexRGBA converts a hex color string to color.NRGBA.
// Returns white on any parse error (safe default for backgrounds).
func ParseHexRGBA(hex string) color.NRGBA {
	r, g, b, a, err := ParseColor(hex)
	if err != nil {
		return color.NRGBA{255, 255, 255, 255}
	}
	return color.NRGBA{r, g, b, a}
}

// NewSolidCanvas creates a uniform solid-color canvas.
func NewSolidCanvas(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}
