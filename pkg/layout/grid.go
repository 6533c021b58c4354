// Package layout arranges a variable number of product images onto a fixed
// canvas: regular NxM grids with padding, and a scaled-overlap collage where
// cells deliberately bleed into their neighbors.
//
// Every placement preserves the source aspect ratio, centers the image in
// its cell, and composites through the image's own alpha channel.
package layout

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

// ErrGeometryDegenerate reports a zero or negative dimension where a positive
// one is required (source image, cell, or resize target). The affected image
// is skipped; its cell stays background.
var ErrGeometryDegenerate = errors.New("degenerate geometry")

// Engine composites grids. Safe for reuse across invocations: it holds no
// per-call state.
type Engine struct {
	filter imaging.ResampleFilter
	log    zerolog.Logger
}

// NewEngine creates a layout engine resampling with Lanczos.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{filter: imaging.Lanczos, log: log}
}

// FitWithin returns the largest size not exceeding maxW x maxH that keeps
// the w:h aspect ratio.
func FitWithin(w, h, maxW, maxH int) (int, int, error) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d into %dx%d", ErrGeometryDegenerate, w, h, maxW, maxH)
	}

	aspect := float64(w) / float64(h)
	outW, outH := maxW, int(float64(maxW)/aspect)
	if outH > maxH {
		outH = maxH
		outW = int(float64(maxH) * aspect)
	}
	return max(outW, 1), max(outH, 1), nil
}

// Grid divides the canvas into rows x cols cells separated by padding and
// paints one image per cell, centered and aspect-fit. When fewer images than
// cells are supplied the remaining cells repeat earlier images; extra images
// are ignored.
func (e *Engine) Grid(canvas *image.NRGBA, images []*image.NRGBA, rows, cols, padding int) {
	e.GridShadowed(canvas, images, rows, cols, padding, nil)
}

// GridShadowed is Grid plus a drop shadow cast along the left edge of every
// placed image. The shadow is scaled to the cell height and pasted in a
// second pass so it falls over already-placed neighbors, not under them.
// A nil or empty shadow draws a plain grid.
func (e *Engine) GridShadowed(canvas *image.NRGBA, images []*image.NRGBA, rows, cols, padding int, shadow *image.NRGBA) {
	if len(images) == 0 || rows < 1 || cols < 1 {
		e.log.Warn().Int("images", len(images)).Int("rows", rows).Int("cols", cols).Msg("grid skipped")
		return
	}

	cw := (canvas.Bounds().Dx() - padding*(cols+1)) / cols
	ch := (canvas.Bounds().Dy() - padding*(rows+1)) / rows
	if cw < 1 || ch < 1 {
		e.log.Warn().Int("cellW", cw).Int("cellH", ch).Msg("grid cells too small")
		return
	}

	var anchors []image.Point
	for idx := 0; idx < rows*cols; idx++ {
		src := images[idx%len(images)]
		row, col := idx/cols, idx%cols
		cellX := padding + col*(cw+padding)
		cellY := padding + row*(ch+padding)
		if pos, ok := e.paste(canvas, src, cellX, cellY, cw, ch, idx); ok {
			anchors = append(anchors, image.Point{X: pos.X, Y: cellY})
		}
	}

	if shadow == nil || shadow.Bounds().Dx() < 1 || shadow.Bounds().Dy() < 1 {
		return
	}
	resized := imaging.Resize(shadow, 0, ch, e.filter)
	sw := resized.Bounds().Dx()
	for _, a := range anchors {
		// Right shadow edge overlaps the image's left edge by 5px.
		x := a.X - sw + 5
		draw.Draw(canvas, image.Rect(x, a.Y, x+sw, a.Y+ch), resized, image.Point{}, draw.Over)
	}
}

// Collage is a grid without padding whose cells are enlarged by scale before
// fitting, so neighboring images overlap. Cell centers stay on the unscaled
// grid.
func (e *Engine) Collage(canvas *image.NRGBA, images []*image.NRGBA, rows, cols int, scale float64) {
	if len(images) == 0 || rows < 1 || cols < 1 {
		e.log.Warn().Int("images", len(images)).Msg("collage skipped")
		return
	}
	if scale < 1.0 {
		scale = 1.0
	}

	cw := canvas.Bounds().Dx() / cols
	ch := canvas.Bounds().Dy() / rows
	sw := int(float64(cw) * scale)
	sh := int(float64(ch) * scale)

	for idx := 0; idx < rows*cols; idx++ {
		src := images[idx%len(images)]
		row, col := idx/cols, idx%cols
		centerX := col*cw + cw/2
		centerY := row*ch + ch/2
		e.paste(canvas, src, centerX-sw/2, centerY-sh/2, sw, sh, idx)
	}
}

// paste fits src into a cell anchored at (cellX, cellY) and composites it
// centered, using the resized image's alpha as the mask. It returns the
// image's top-left corner. A degenerate source is logged and skipped; later
// cells do not shift.
func (e *Engine) paste(canvas *image.NRGBA, src *image.NRGBA, cellX, cellY, cw, ch, idx int) (image.Point, bool) {
	w, h, err := FitWithin(src.Bounds().Dx(), src.Bounds().Dy(), cw, ch)
	if err != nil {
		e.log.Warn().Err(err).Int("cell", idx).Msg("image skipped")
		return image.Point{}, false
	}

	resized := imaging.Resize(src, w, h, e.filter)
	x := cellX + (cw-w)/2
	y := cellY + (ch-h)/2
	draw.Draw(canvas, image.Rect(x, y, x+w, y+h), resized, image.Point{}, draw.Over)
	return image.Point{X: x, Y: y}, true
}
