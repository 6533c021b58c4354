// Package watermark tiles a semi-transparent mark across a finished canvas.
//
// The mark is scaled relative to the canvas width, faded to a configured
// opacity, and repeated in a staggered brick pattern that overscans the edges
// so no corner escapes coverage.
package watermark

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Options controls mark size, density and visibility.
type Options struct {
	// OpacityPct is the mark opacity in percent. Zero or negative disables
	// watermarking entirely.
	OpacityPct int

	// SpacingMultiplier is the gap between repeats as a multiple of the mark
	// size. Values below 1 are treated as 1.
	SpacingMultiplier float64

	// SizeRatio is the mark width as a fraction of the canvas width.
	SizeRatio float64
}

func (o Options) normalized() Options {
	if o.OpacityPct > 100 {
		o.OpacityPct = 100
	}
	if o.SpacingMultiplier < 1 {
		o.SpacingMultiplier = 1
	}
	if o.SizeRatio <= 0 || o.SizeRatio > 1 {
		o.SizeRatio = 0.1
	}
	return o
}

// Engine applies watermarks with one fixed set of options.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

func NewEngine(opts Options, log zerolog.Logger) *Engine {
	return &Engine{opts: opts.normalized(), log: log}
}

// Apply tiles unit across canvas in place and returns the canvas. With
// opacity at or below zero, or a nil or empty unit, the canvas is returned
// untouched.
func (e *Engine) Apply(canvas *image.NRGBA, unit *image.NRGBA) *image.NRGBA {
	if e.opts.OpacityPct <= 0 {
		return canvas
	}
	if unit == nil || unit.Bounds().Dx() < 1 || unit.Bounds().Dy() < 1 {
		e.log.Warn().Msg("watermark unit empty, skipping")
		return canvas
	}

	uw := int(float64(canvas.Bounds().Dx()) * e.opts.SizeRatio)
	if uw < 1 {
		uw = 1
	}
	scaled := imaging.Resize(unit, uw, 0, imaging.Lanczos)
	faded := fadeAlpha(scaled, e.opts.OpacityPct)

	e.tile(canvas, faded)
	return canvas
}

// ApplyText renders text once with face and tiles the rendered tile like an
// image mark. The tile is drawn opaque; Apply handles fading.
func (e *Engine) ApplyText(canvas *image.NRGBA, text string, face font.Face) *image.NRGBA {
	if e.opts.OpacityPct <= 0 || text == "" {
		return canvas
	}

	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w < 1 || h < 1 {
		return canvas
	}

	tile := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  tile,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: -bounds.Min.X,
			Y: -bounds.Min.Y,
		},
	}
	d.DrawString(text)

	return e.Apply(canvas, tile)
}

// tile composites the faded mark in staggered rows. The walk starts 1.5 mark
// sizes outside the top-left corner and runs the same distance past the
// bottom-right, so partially visible marks cover the edges. Odd rows are
// shifted by half the horizontal spacing.
func (e *Engine) tile(canvas, mark *image.NRGBA) {
	mw := mark.Bounds().Dx()
	mh := mark.Bounds().Dy()
	spacingX := int(float64(mw) * e.opts.SpacingMultiplier)
	spacingY := int(float64(mh) * e.opts.SpacingMultiplier)
	if spacingX < 1 {
		spacingX = 1
	}
	if spacingY < 1 {
		spacingY = 1
	}

	startX := -mw * 3 / 2
	startY := -mh * 3 / 2
	endX := canvas.Bounds().Dx() + mw*3/2
	endY := canvas.Bounds().Dy() + mh*3/2

	row := 0
	for y := startY; y < endY; y += spacingY {
		offset := 0
		if row%2 == 1 {
			offset = spacingX / 2
		}
		for x := startX + offset; x < endX; x += spacingX {
			draw.Draw(canvas, image.Rect(x, y, x+mw, y+mh), mark, image.Point{}, draw.Over)
		}
		row++
	}
}

// fadeAlpha returns a copy of src with every alpha value scaled to pct/100.
func fadeAlpha(src *image.NRGBA, pct int) *image.NRGBA {
	out := imaging.Clone(src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(int(out.Pix[i]) * pct / 100)
	}
	return out
}
