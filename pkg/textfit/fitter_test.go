package textfit

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestFitter(t *testing.T, opts Options) *Fitter {
	t.Helper()
	fonts, err := NewFontManager("", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	return NewFitter(fonts, opts, zerolog.Nop())
}

func TestFitTwoLineTitle_RedFloral(t *testing.T) {
	f := newTestFitter(t, Options{StartSize: 250, MinSize: 20, Step: 5, LineSpacing: 60})

	fit, err := f.FitTwoLineTitle("Red Floral", image.Rect(0, 0, 1000, 300))
	if err != nil {
		t.Fatalf("FitTwoLineTitle: %v", err)
	}

	if fit.Line1 != "Red" || fit.Line2 != "Floral" {
		t.Errorf("lines = %q / %q, want Red / Floral", fit.Line1, fit.Line2)
	}
	if fit.Size > 250 || fit.Size < 20 {
		t.Errorf("size = %d, want within 20..250", fit.Size)
	}
	if fit.BlockWidth > 1000 || fit.BlockHeight > 300 {
		t.Errorf("block %dx%d exceeds 1000x300", fit.BlockWidth, fit.BlockHeight)
	}
}

func TestFitTwoLineTitle_LargestSizeWins(t *testing.T) {
	f := newTestFitter(t, Options{StartSize: 100, MinSize: 10, Step: 5, LineSpacing: 10})
	rect := image.Rect(0, 0, 2000, 1000)

	fit, err := f.FitTwoLineTitle("Big Title", rect)
	if err != nil {
		t.Fatalf("FitTwoLineTitle: %v", err)
	}
	// A huge rectangle fits the very first size tried.
	if fit.Size != 100 {
		t.Errorf("size = %d, want 100", fit.Size)
	}
}

func TestFitTwoLineTitle_NoFit(t *testing.T) {
	f := newTestFitter(t, Options{StartSize: 60, MinSize: 20, Step: 5, LineSpacing: 10})

	tests := []struct {
		name  string
		title string
		rect  image.Rectangle
	}{
		{"single word", "Floral", image.Rect(0, 0, 1000, 1000)},
		{"empty title", "", image.Rect(0, 0, 1000, 1000)},
		{"tiny rectangle", "Red Floral", image.Rect(0, 0, 8, 8)},
		{"empty rectangle", "Red Floral", image.Rectangle{}},
		{"long repeated word", strings.Repeat("m", 200) + " " + strings.Repeat("m", 200), image.Rect(0, 0, 100, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.FitTwoLineTitle(tt.title, tt.rect)
			if !errors.Is(err, ErrNoFit) {
				t.Errorf("err = %v, want ErrNoFit", err)
			}
		})
	}
}

func TestFitTwoLineTitle_EarliestSplitAtWinningSize(t *testing.T) {
	f := newTestFitter(t, Options{StartSize: 40, MinSize: 10, Step: 5, LineSpacing: 10})

	fit, err := f.FitTwoLineTitle("A Very Long Seamless Pattern", image.Rect(0, 0, 1200, 400))
	if err != nil {
		t.Fatalf("FitTwoLineTitle: %v", err)
	}
	// The split after the first word is tried first and the rectangle is
	// wide enough for the remainder on one line.
	if fit.Line1 != "A" {
		t.Errorf("line1 = %q, want earliest split", fit.Line1)
	}
	if got := fit.Line1 + " " + fit.Line2; got != "A Very Long Seamless Pattern" {
		t.Errorf("recombined = %q, words lost", got)
	}
}

func TestOptionsNormalized(t *testing.T) {
	got := Options{StartSize: -5, MinSize: 0, Step: 0, LineSpacing: -1}.normalized()
	want := Options{StartSize: 1, MinSize: 1, Step: 1, LineSpacing: 0}
	if got != want {
		t.Errorf("normalized = %+v, want %+v", got, want)
	}

	got = Options{StartSize: 10, MinSize: 50, Step: 5}.normalized()
	if got.MinSize != 10 {
		t.Errorf("MinSize = %d, want clamped to StartSize", got.MinSize)
	}
}

func TestDrawFit_PaintsInsideRect(t *testing.T) {
	f := newTestFitter(t, Options{StartSize: 80, MinSize: 20, Step: 5, LineSpacing: 20})
	rect := image.Rect(100, 100, 700, 400)

	fit, err := f.FitTwoLineTitle("Red Floral", rect)
	if err != nil {
		t.Fatalf("FitTwoLineTitle: %v", err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, 800, 500))
	if err := f.DrawFit(dst, fit, rect, color.White); err != nil {
		t.Fatalf("DrawFit: %v", err)
	}

	painted := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] == 0 {
			continue
		}
		painted = true
		x := (i / 4) % 800
		y := (i / 4) / 800
		if x < rect.Min.X || x >= rect.Max.X || y < rect.Min.Y || y >= rect.Max.Y {
			t.Fatalf("pixel painted outside rect at (%d,%d)", x, y)
		}
	}
	if !painted {
		t.Error("DrawFit painted nothing")
	}
}
