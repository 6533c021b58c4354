package layout

import (
	"errors"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

func solid(w, h int, r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"square into square", 1000, 1000, 955, 955, 955, 955},
		{"wide into square", 2000, 1000, 500, 500, 500, 250},
		{"tall into square", 1000, 2000, 500, 500, 250, 500},
		{"upscale", 100, 50, 1000, 1000, 1000, 500},
		{"already fits exactly", 300, 200, 300, 200, 300, 200},
		{"extreme aspect clamps to 1", 10000, 1, 5, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := FitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("FitWithin: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if w > tt.maxW || h > tt.maxH {
				t.Errorf("result %dx%d exceeds bounds %dx%d", w, h, tt.maxW, tt.maxH)
			}
		})
	}
}

func TestFitWithin_Degenerate(t *testing.T) {
	for _, args := range [][4]int{
		{0, 100, 50, 50},
		{100, 0, 50, 50},
		{100, 100, 0, 50},
		{100, 100, 50, -1},
	} {
		if _, _, err := FitWithin(args[0], args[1], args[2], args[3]); !errors.Is(err, ErrGeometryDegenerate) {
			t.Errorf("FitWithin(%v) err = %v, want ErrGeometryDegenerate", args, err)
		}
	}
}

func TestGrid_SquareCellsExact(t *testing.T) {
	// Four 1000x1000 squares on 2000x2000 with padding 30: cell is
	// (2000-90)/2 = 955 and each square fills its cell edge to edge.
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 2000, 2000))
	images := []*image.NRGBA{
		solid(1000, 1000, 255, 0, 0, 255),
		solid(1000, 1000, 0, 255, 0, 255),
		solid(1000, 1000, 0, 0, 255, 255),
		solid(1000, 1000, 255, 255, 0, 255),
	}

	e.Grid(canvas, images, 2, 2, 30)

	// First cell spans (30,30)-(985,985).
	if a := canvas.NRGBAAt(30, 30).A; a != 255 {
		t.Errorf("cell corner (30,30) alpha = %d, want opaque", a)
	}
	if a := canvas.NRGBAAt(984, 984).A; a != 255 {
		t.Errorf("cell corner (984,984) alpha = %d, want opaque", a)
	}
	if a := canvas.NRGBAAt(29, 29).A; a != 0 {
		t.Errorf("padding pixel (29,29) alpha = %d, want transparent", a)
	}
	if a := canvas.NRGBAAt(985, 985).A; a != 0 {
		t.Errorf("gap pixel (985,985) alpha = %d, want transparent", a)
	}

	// Second cell starts at x = 30+955+30 = 1015.
	if c := canvas.NRGBAAt(1015, 30); c.G != 255 || c.A != 255 {
		t.Errorf("second cell corner = %+v, want green", c)
	}
}

func TestGrid_CentersNonSquare(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 1000, 1000))

	// 2:1 landscape in a single 1000x1000 cell: resized to 1000x500,
	// centered with a 250px band above and below.
	e.Grid(canvas, []*image.NRGBA{solid(200, 100, 255, 0, 0, 255)}, 1, 1, 0)

	if a := canvas.NRGBAAt(500, 249).A; a != 0 {
		t.Errorf("above band alpha = %d, want transparent", a)
	}
	if a := canvas.NRGBAAt(500, 250).A; a != 255 {
		t.Errorf("top edge alpha = %d, want opaque", a)
	}
	if a := canvas.NRGBAAt(500, 749).A; a != 255 {
		t.Errorf("bottom edge alpha = %d, want opaque", a)
	}
	if a := canvas.NRGBAAt(500, 750).A; a != 0 {
		t.Errorf("below band alpha = %d, want transparent", a)
	}
}

func TestGrid_RepeatsWhenShort(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 400, 400))

	// One image, four cells: every cell shows it.
	e.Grid(canvas, []*image.NRGBA{solid(100, 100, 255, 0, 0, 255)}, 2, 2, 0)

	for _, p := range []image.Point{{100, 100}, {300, 100}, {100, 300}, {300, 300}} {
		if c := canvas.NRGBAAt(p.X, p.Y); c.R != 255 || c.A != 255 {
			t.Errorf("cell center %v = %+v, want red", p, c)
		}
	}
}

func TestGrid_SkipsDegenerateSource(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 400, 400))

	// The zero-sized image is skipped; its cell stays background and the
	// other cells are unaffected.
	images := []*image.NRGBA{
		image.NewNRGBA(image.Rectangle{}),
		solid(100, 100, 0, 255, 0, 255),
	}
	e.Grid(canvas, images, 1, 2, 0)

	if a := canvas.NRGBAAt(100, 200).A; a != 0 {
		t.Errorf("degenerate cell alpha = %d, want background", a)
	}
	if c := canvas.NRGBAAt(300, 200); c.G != 255 {
		t.Errorf("second cell = %+v, want green", c)
	}
}

func TestGridShadowed_CastsAlongLeftEdges(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 400, 200))

	// Two 200x200 cells, each filled edge to edge by the red square. The
	// green shadow is resized to the cell height (50x100 -> 100x200) and
	// pasted with its right edge 5px past each image's left edge, so it
	// falls over the first cell's image.
	red := solid(100, 100, 255, 0, 0, 255)
	shadow := solid(50, 100, 0, 255, 0, 255)
	e.GridShadowed(canvas, []*image.NRGBA{red, red}, 1, 2, 0, shadow)

	if c := canvas.NRGBAAt(150, 100); c.G != 255 {
		t.Errorf("pixel under second image's shadow = %+v, want green", c)
	}
	if c := canvas.NRGBAAt(2, 100); c.G != 255 {
		t.Errorf("first image's 5px shadow overlap = %+v, want green", c)
	}
	if c := canvas.NRGBAAt(210, 100); c.R != 255 || c.G != 0 {
		t.Errorf("pixel beyond shadow reach = %+v, want red", c)
	}
}

func TestGridShadowed_NilShadowMatchesGrid(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	plain := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	shadowed := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	src := []*image.NRGBA{solid(50, 50, 255, 0, 0, 255)}

	e.Grid(plain, src, 1, 1, 10)
	e.GridShadowed(shadowed, src, 1, 1, 10, nil)

	for i := range plain.Pix {
		if plain.Pix[i] != shadowed.Pix[i] {
			t.Fatalf("pixel data diverges at byte %d", i)
		}
	}
}

func TestCollage_OverlapsCells(t *testing.T) {
	e := NewEngine(zerolog.Nop())
	canvas := image.NewNRGBA(image.Rect(0, 0, 400, 400))

	// Scale 1.5 on a 2x2: cells are 200x200, enlarged to 300x300, so the
	// canvas center region is covered by overlapping neighbors.
	e.Collage(canvas, []*image.NRGBA{solid(100, 100, 255, 0, 0, 255)}, 2, 2, 1.5)

	if a := canvas.NRGBAAt(200, 200).A; a != 255 {
		t.Errorf("canvas center alpha = %d, want covered by overlap", a)
	}
	if a := canvas.NRGBAAt(100, 100).A; a != 255 {
		t.Errorf("first cell center alpha = %d, want opaque", a)
	}
}

func TestSelectMainGrid(t *testing.T) {
	tests := []struct {
		name     string
		images   []*image.NRGBA
		wantRows int
		wantCols int
	}{
		{"squares", []*image.NRGBA{solid(10, 10, 0, 0, 0, 255)}, 2, 3},
		{"portraits", []*image.NRGBA{solid(10, 20, 0, 0, 0, 255), solid(30, 40, 0, 0, 0, 255)}, 2, 3},
		{"landscapes", []*image.NRGBA{solid(20, 10, 0, 0, 0, 255)}, 3, 2},
		{"mixed leaning landscape", []*image.NRGBA{solid(40, 10, 0, 0, 0, 255), solid(10, 10, 0, 0, 0, 255)}, 3, 2},
		{"empty", nil, 2, 3},
		{"zero height ignored", []*image.NRGBA{image.NewNRGBA(image.Rectangle{}), solid(20, 10, 0, 0, 0, 255)}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := SelectMainGrid(tt.images)
			if rows != tt.wantRows || cols != tt.wantCols {
				t.Errorf("got %dx%d, want %dx%d", rows, cols, tt.wantRows, tt.wantCols)
			}
		})
	}
}

func TestGrid_AspectPreserved(t *testing.T) {
	// Resizing through the engine keeps the source ratio within a pixel.
	src := solid(640, 480, 255, 0, 0, 255)
	w, h, err := FitWithin(src.Bounds().Dx(), src.Bounds().Dy(), 333, 333)
	if err != nil {
		t.Fatalf("FitWithin: %v", err)
	}

	resized := imaging.Resize(src, w, h, imaging.Lanczos)
	gotRatio := float64(resized.Bounds().Dx()) / float64(resized.Bounds().Dy())
	wantRatio := 640.0 / 480.0
	if diff := gotRatio - wantRatio; diff > 0.01 || diff < -0.01 {
		t.Errorf("aspect ratio %f, want %f", gotRatio, wantRatio)
	}
}
