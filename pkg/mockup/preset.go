// Package mockup drives the full composition pipeline for one product
// folder: load sources, build the main grid with overlay and fitted title,
// numbered 2x2 grids, a transparency demo and a collage, watermark each, and
// write everything under the folder's mocks/ directory.
package mockup

import (
	"errors"
	"fmt"
	"sort"

	"github.com/digitalveil/GoMockup/pkg/textfit"
	"github.com/digitalveil/GoMockup/pkg/watermark"
)

// ErrUnknownProduct reports a product type with no registered preset.
var ErrUnknownProduct = errors.New("unknown product type")

// ── Preset ──

// Preset is the immutable configuration of one product type. Values are
// empirically tuned per template; components receive them at construction
// and never mutate them.
type Preset struct {
	Name string

	// Main mockup canvas (overlay and title).
	MainWidth  int
	MainHeight int

	// Secondary grid canvases (2x2 numbered grids, collage base).
	GridWidth  int
	GridHeight int

	// Grid cell gap in pixels.
	CellPadding int

	// Overlay region detection.
	RegionThreshold uint8
	RegionPadding   int

	// Title fitting and color.
	Text      textfit.Options
	TextColor string // "#rrggbb"

	// Asset file names, resolved through the asset directory.
	FontFile          string
	OverlayAsset      string
	BackgroundAsset   string
	TransparencyAsset string
	LogoAsset         string
	ShadowAsset       string

	// Fallback canvas fill when BackgroundAsset is absent.
	BackgroundColor string

	Watermark watermark.Options

	// Collage cell enlargement and the minimum source count to bother.
	CollageScale     float64
	MinCollageImages int
}

// PatternPreset is the seamless-pattern configuration.
func PatternPreset() Preset {
	return Preset{
		Name:            "pattern",
		MainWidth:       3000,
		MainHeight:      2250,
		GridWidth:       2000,
		GridHeight:      2000,
		CellPadding:     30,
		RegionThreshold: 20,
		RegionPadding:   35,
		Text: textfit.Options{
			StartSize:   250,
			MinSize:     20,
			Step:        5,
			LineSpacing: 60,
		},
		TextColor:         "#ffffff",
		FontFile:          "Clattering.ttf",
		OverlayAsset:      "overlay.png",
		BackgroundAsset:   "canvas.png",
		TransparencyAsset: "transparency_mock.png",
		LogoAsset:         "logo.png",
		ShadowAsset:       "shadow.png",
		BackgroundColor:   "#f5f0e8",
		Watermark: watermark.Options{
			OpacityPct:        40,
			SpacingMultiplier: 8,
			SizeRatio:         0.12,
		},
		CollageScale:     1.5,
		MinCollageImages: 4,
	}
}

// ClipartPreset is the clipart configuration: darker text, tighter
// watermark, smaller title sizes for busier overlays.
func ClipartPreset() Preset {
	p := PatternPreset()
	p.Name = "clipart"
	p.TextColor = "#333333"
	p.Text.StartSize = 185
	p.Watermark.SpacingMultiplier = 4
	p.Watermark.OpacityPct = 45
	return p
}

// BorderPreset is the decorative-border configuration: wide sources, so
// looser region padding and no collage.
func BorderPreset() Preset {
	p := PatternPreset()
	p.Name = "border"
	p.FontFile = "Free Version Angelina.ttf"
	p.Text.StartSize = 125
	p.RegionPadding = 20
	p.MinCollageImages = 0
	p.CollageScale = 0
	return p
}

// registry maps product-type tags to preset constructors. Registration is
// explicit and compile-time; nothing registers itself on import.
var registry = map[string]func() Preset{
	"pattern": PatternPreset,
	"clipart": ClipartPreset,
	"border":  BorderPreset,
}

// PresetFor returns the preset registered for productType.
func PresetFor(productType string) (Preset, error) {
	ctor, ok := registry[productType]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProduct, productType, ProductTypes())
	}
	return ctor(), nil
}

// ProductTypes lists the registered product types, sorted.
func ProductTypes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
