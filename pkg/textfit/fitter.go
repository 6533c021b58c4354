// Package textfit forces a product title onto exactly two lines inside a
// detected overlay region.
//
// The search is greedy: font sizes are tried from large to small, and at
// each size every word split point is tried in order. The first combination
// whose tight glyph block fits the region wins, so the largest fitting size
// is always chosen, and at that size the earliest split.
package textfit

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
)

// ErrNoFit reports a title that cannot be laid out on two lines inside the
// target rectangle: fewer than two words, no tested size fits, or the font
// could not be loaded. Callers skip the title and keep the mockup.
var ErrNoFit = errors.New("title does not fit")

// Options are the five knobs of the fit search. Values are product-specific
// constants carried by a preset; the fitter never tunes them.
type Options struct {
	StartSize   int // largest size tried
	MinSize     int // smallest size tried
	Step        int // size decrement per iteration
	LineSpacing int // fixed pixel gap between the two line boxes
}

func (o Options) normalized() Options {
	if o.StartSize < 1 {
		o.StartSize = 1
	}
	if o.MinSize < 1 {
		o.MinSize = 1
	}
	if o.MinSize > o.StartSize {
		o.MinSize = o.StartSize
	}
	if o.Step < 1 {
		o.Step = 1
	}
	if o.LineSpacing < 0 {
		o.LineSpacing = 0
	}
	return o
}

// Fit is a successful two-line layout. Both lines are non-empty and the
// block is guaranteed to fit the rectangle passed to FitTwoLineTitle at the
// stated size.
type Fit struct {
	Line1, Line2 string
	Size         int
	BlockWidth   int
	BlockHeight  int
}

// Fitter runs the two-line search against one font.
type Fitter struct {
	fonts *FontManager
	opts  Options
	log   zerolog.Logger
}

// NewFitter creates a Fitter. Out-of-range options are clamped.
func NewFitter(fonts *FontManager, opts Options, log zerolog.Logger) *Fitter {
	return &Fitter{fonts: fonts, opts: opts.normalized(), log: log}
}

// Options returns the normalized search options.
func (f *Fitter) Options() Options { return f.opts }

// FitTwoLineTitle searches for the largest font size and earliest word split
// that places title on two lines inside rect.
//
// Width and height of a line are the tight rendered bounding box of its
// glyphs, not the advance width. The block is max(line widths) wide and
// line1+spacing+line2 tall.
func (f *Fitter) FitTwoLineTitle(title string, rect image.Rectangle) (Fit, error) {
	words := strings.Fields(title)
	if len(words) < 2 {
		return Fit{}, fmt.Errorf("%w: %q has fewer than two words", ErrNoFit, title)
	}
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return Fit{}, fmt.Errorf("%w: empty target rectangle", ErrNoFit)
	}

	for size := f.opts.StartSize; size >= f.opts.MinSize; size -= f.opts.Step {
		face, err := f.fonts.Face(float64(size))
		if err != nil {
			// A font that fails at one size fails at all of them.
			f.log.Warn().Err(err).Str("title", title).Msg("font load failed, skipping title")
			return Fit{}, fmt.Errorf("%w: %v", ErrNoFit, err)
		}

		for i := 1; i < len(words); i++ {
			line1 := strings.Join(words[:i], " ")
			line2 := strings.Join(words[i:], " ")

			w1, h1 := measure(face, line1)
			w2, h2 := measure(face, line2)

			blockW := max(w1, w2)
			blockH := h1 + f.opts.LineSpacing + h2
			if blockW <= rect.Dx() && blockH <= rect.Dy() {
				return Fit{
					Line1:       line1,
					Line2:       line2,
					Size:        size,
					BlockWidth:  blockW,
					BlockHeight: blockH,
				}, nil
			}
		}
	}

	return Fit{}, fmt.Errorf("%w: %q at sizes %d..%d", ErrNoFit, title, f.opts.StartSize, f.opts.MinSize)
}

// measure returns the tight glyph bounding box of s.
func measure(face font.Face, s string) (w, h int) {
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}
