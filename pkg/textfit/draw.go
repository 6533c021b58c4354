// draw.go — Render a computed Fit into a canvas.
package textfit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawFit paints a two-line fit into dst. The text block is vertically
// centered in rect; line1's tight box is anchored at the block top and line2
// follows after the configured line spacing. Each line is horizontally
// centered in rect.
func (f *Fitter) DrawFit(dst draw.Image, fit Fit, rect image.Rectangle, col color.Color) error {
	face, err := f.fonts.Face(float64(fit.Size))
	if err != nil {
		return fmt.Errorf("draw title: %w", err)
	}

	_, h1 := measure(face, fit.Line1)
	top := rect.Min.Y + (rect.Dy()-fit.BlockHeight)/2

	drawLine(dst, face, fit.Line1, rect, top, col)
	drawLine(dst, face, fit.Line2, rect, top+h1+f.opts.LineSpacing, col)
	return nil
}

// drawLine places s so its tight glyph box starts at y and is centered
// horizontally in rect. The drawer dot is offset by the box minimum to
// anchor the box rather than the baseline.
func drawLine(dst draw.Image, face font.Face, s string, rect image.Rectangle, y int, col color.Color) {
	bounds, _ := font.BoundString(face, s)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	x := rect.Min.X + (rect.Dx()-w)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(s)
}
