// orchestrator.go — Per-folder pipeline: sources in, mockup variants out.
package mockup

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/digitalveil/GoMockup/pkg/assets"
	"github.com/digitalveil/GoMockup/pkg/generator"
	"github.com/digitalveil/GoMockup/pkg/layout"
	"github.com/digitalveil/GoMockup/pkg/overlay"
	"github.com/digitalveil/GoMockup/pkg/textfit"
	"github.com/digitalveil/GoMockup/pkg/watermark"
)

// outDirName is the output subdirectory created inside each product folder.
const outDirName = "mocks"

// ErrNoSources reports a product folder with no usable source images. It is
// the only condition that fails a whole run.
var ErrNoSources = errors.New("no usable source images")

// Outcome is the result of one mockup variant. Path is set on success, Err
// on failure; a variant never produces a partial file.
type Outcome struct {
	Variant string
	Path    string
	Err     error
}

// Result collects the outcomes of all variants attempted for one folder.
type Result struct {
	Folder   string
	Title    string
	Outcomes []Outcome
}

// Failed reports whether the run produced nothing at all.
func (r Result) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Err == nil {
			return false
		}
	}
	return true
}

// Err returns the first variant error, or nil.
func (r Result) Err() error {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}

// Orchestrator composes every mockup variant for product folders under one
// preset. Template assets are decoded once at construction and reused
// read-only, so batch runs never re-read them per folder.
type Orchestrator struct {
	preset Preset
	loader *assets.Loader
	fonts  *textfit.FontManager
	fitter *textfit.Fitter
	grids  *layout.Engine
	marker *watermark.Engine
	log    zerolog.Logger

	// Cached templates; nil when the asset is absent. Everything drawing
	// onto them works on resized or cloned copies.
	overlayTpl      *image.NRGBA
	backgroundTpl   *image.NRGBA
	transparencyTpl *image.NRGBA
	transparencyErr error
	logo            *image.NRGBA
	shadow          *image.NRGBA

	// watermarkText is tiled when no logo asset exists. Empty disables the
	// text fallback.
	watermarkText string
}

// NewOrchestrator wires the pipeline for one preset. The title font is
// resolved through the loader; a missing font file falls back to the
// embedded default inside FontManager.
func NewOrchestrator(preset Preset, loader *assets.Loader, watermarkText string, log zerolog.Logger) (*Orchestrator, error) {
	fontPath, err := loader.AssetPath(preset.FontFile)
	if err != nil {
		log.Warn().Str("font", preset.FontFile).Msg("title font not found, using embedded default")
		fontPath = ""
	}
	fonts, err := textfit.NewFontManager(fontPath, log)
	if err != nil {
		return nil, fmt.Errorf("init fonts: %w", err)
	}

	o := &Orchestrator{
		preset:        preset,
		loader:        loader,
		fonts:         fonts,
		fitter:        textfit.NewFitter(fonts, preset.Text, log),
		grids:         layout.NewEngine(log),
		marker:        watermark.NewEngine(preset.Watermark, log),
		log:           log,
		watermarkText: watermarkText,
	}

	o.overlayTpl = o.loadTemplate(preset.OverlayAsset, assets.WithAlpha)
	o.backgroundTpl = o.loadTemplate(preset.BackgroundAsset, assets.Opaque)
	o.logo = o.loadTemplate(preset.LogoAsset, assets.WithAlpha)
	o.shadow = o.loadTemplate(preset.ShadowAsset, assets.WithAlpha)
	o.transparencyTpl, o.transparencyErr = loader.LoadAsset(preset.TransparencyAsset, assets.Opaque)
	return o, nil
}

// loadTemplate caches an optional template asset, logging the absence once
// instead of on every folder. An empty name means the preset opts out.
func (o *Orchestrator) loadTemplate(name string, mode assets.Mode) *image.NRGBA {
	if name == "" {
		return nil
	}
	img, err := o.loader.LoadAsset(name, mode)
	if err != nil {
		o.log.Warn().Err(err).Str("asset", name).Msg("template asset unavailable")
		return nil
	}
	return img
}

// Run builds every variant for one product folder. An empty title is derived
// from the folder name. Variants fail independently; only a folder with no
// loadable source images fails outright.
func (o *Orchestrator) Run(folder, title string) Result {
	if title == "" {
		title = TitleFromFolder(filepath.Base(folder))
	}
	res := Result{Folder: folder, Title: title}
	log := o.log.With().Str("folder", folder).Logger()

	paths, err := assets.ListImages(folder)
	if err != nil || len(paths) == 0 {
		res.Outcomes = append(res.Outcomes, Outcome{Variant: "main", Err: fmt.Errorf("%w: %s", ErrNoSources, folder)})
		return res
	}

	var sources []*image.NRGBA
	for _, p := range paths {
		img, err := o.loader.Load(p, assets.WithAlpha)
		if err != nil {
			log.Warn().Err(err).Str("image", p).Msg("source skipped")
			continue
		}
		sources = append(sources, img)
	}
	if len(sources) == 0 {
		res.Outcomes = append(res.Outcomes, Outcome{Variant: "main", Err: fmt.Errorf("%w: 0 of %d decodable", ErrNoSources, len(paths))})
		return res
	}
	log.Info().Int("sources", len(sources)).Str("title", title).Msg("composing mockups")

	outDir := filepath.Join(folder, outDirName)
	res.add(o.mainMockup(outDir, title, sources, log))
	res.Outcomes = append(res.Outcomes, o.numberedGrids(outDir, sources, log)...)
	res.add(o.transparencyDemo(outDir, sources[0], log))
	if o.preset.MinCollageImages > 0 && len(sources) >= o.preset.MinCollageImages {
		res.add(o.collage(outDir, sources, log))
	}
	return res
}

func (r *Result) add(o Outcome) { r.Outcomes = append(r.Outcomes, o) }

// mainMockup is the flagship variant: oriented source grid with per-image
// drop shadows, template background and overlay, fitted two-line title,
// watermark.
func (o *Orchestrator) mainMockup(outDir, title string, sources []*image.NRGBA, log zerolog.Logger) Outcome {
	out := Outcome{Variant: "main"}
	p := o.preset

	canvas := o.background(p.MainWidth, p.MainHeight)
	rows, cols := layout.SelectMainGrid(sources)
	o.grids.GridShadowed(canvas, sources, rows, cols, p.CellPadding, o.shadow)

	if o.overlayTpl == nil {
		log.Warn().Msg("overlay missing, title skipped")
	} else {
		scaled := imaging.Resize(o.overlayTpl, p.MainWidth, p.MainHeight, imaging.Lanczos)
		draw.Draw(canvas, canvas.Bounds(), scaled, image.Point{}, draw.Over)
		o.drawTitle(canvas, scaled, title, log)
	}

	o.applyWatermark(canvas, log)

	out.Path = filepath.Join(outDir, "main.png")
	if err := generator.Save(out.Path, canvas); err != nil {
		return Outcome{Variant: "main", Err: err}
	}
	return out
}

// drawTitle detects the overlay text region and renders the fitted title.
// Region and fit failures skip the title but keep the mockup.
func (o *Orchestrator) drawTitle(canvas, tpl *image.NRGBA, title string, log zerolog.Logger) {
	p := o.preset
	region, err := overlay.DetectTextRegion(tpl, p.RegionThreshold, p.RegionPadding)
	if err != nil {
		log.Warn().Err(err).Msg("title skipped")
		return
	}

	fit, err := o.fitter.FitTwoLineTitle(title, region)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("title skipped")
		return
	}

	col := generator.ParseHexRGBA(p.TextColor)
	if err := o.fitter.DrawFit(canvas, fit, region, col); err != nil {
		log.Warn().Err(err).Msg("title skipped")
		return
	}
	log.Debug().Int("size", fit.Size).Str("line1", fit.Line1).Str("line2", fit.Line2).Msg("title rendered")
}

// numberedGrids chunks the sources four at a time into 2x2 grids named
// grid.png, grid_2.png, and so on. A trailing chunk smaller than four images
// still gets its page, with earlier chunk images repeated into the spare
// cells.
func (o *Orchestrator) numberedGrids(outDir string, sources []*image.NRGBA, log zerolog.Logger) []Outcome {
	p := o.preset
	var outs []Outcome

	for n, i := 1, 0; i < len(sources); n, i = n+1, i+4 {
		canvas := generator.NewSolidCanvas(p.GridWidth, p.GridHeight, generator.ParseHexRGBA(p.BackgroundColor))
		o.grids.Grid(canvas, sources[i:min(i+4, len(sources))], 2, 2, p.CellPadding)
		o.applyWatermark(canvas, log)

		name := "grid.png"
		if n > 1 {
			name = fmt.Sprintf("grid_%d.png", n)
		}
		variant := fmt.Sprintf("grid#%d", n)

		path := filepath.Join(outDir, name)
		if err := generator.Save(path, canvas); err != nil {
			outs = append(outs, Outcome{Variant: variant, Err: err})
			continue
		}
		outs = append(outs, Outcome{Variant: variant, Path: path})
	}
	return outs
}

// transparencyDemo pastes the first source on the left half of the
// transparency template, vertically centered, to show the alpha channel
// against the template's checkerboard.
func (o *Orchestrator) transparencyDemo(outDir string, first *image.NRGBA, log zerolog.Logger) Outcome {
	out := Outcome{Variant: "transparency"}

	if o.transparencyErr != nil {
		return Outcome{Variant: "transparency", Err: o.transparencyErr}
	}
	canvas := imaging.Clone(o.transparencyTpl)

	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	w, h, err := layout.FitWithin(first.Bounds().Dx(), first.Bounds().Dy(), cw/2, ch)
	if err != nil {
		return Outcome{Variant: "transparency", Err: err}
	}

	resized := imaging.Resize(first, w, h, imaging.Lanczos)
	x := (cw/2 - w) / 2
	y := (ch - h) / 2
	draw.Draw(canvas, image.Rect(x, y, x+w, y+h), resized, image.Point{}, draw.Over)

	out.Path = filepath.Join(outDir, "transparency.png")
	if err := generator.Save(out.Path, canvas); err != nil {
		return Outcome{Variant: "transparency", Err: err}
	}
	return out
}

// collage builds the scaled-overlap variant on the grid canvas.
func (o *Orchestrator) collage(outDir string, sources []*image.NRGBA, log zerolog.Logger) Outcome {
	p := o.preset
	out := Outcome{Variant: "collage"}

	canvas := o.background(p.GridWidth, p.GridHeight)
	rows, cols := layout.SelectMainGrid(sources)
	o.grids.Collage(canvas, sources, rows, cols, p.CollageScale)
	o.applyWatermark(canvas, log)

	out.Path = filepath.Join(outDir, "collage.png")
	if err := generator.Save(out.Path, canvas); err != nil {
		return Outcome{Variant: "collage", Err: err}
	}
	return out
}

// background scales the cached template background to size, or fills solid
// when the asset is absent. The resize allocates, so callers own the result.
func (o *Orchestrator) background(w, h int) *image.NRGBA {
	if o.backgroundTpl != nil {
		return imaging.Resize(o.backgroundTpl, w, h, imaging.Lanczos)
	}
	return generator.NewSolidCanvas(w, h, generator.ParseHexRGBA(o.preset.BackgroundColor))
}

// applyWatermark tiles the logo asset, falling back to the configured text
// mark. Watermarking is best effort and never fails a variant.
func (o *Orchestrator) applyWatermark(canvas *image.NRGBA, log zerolog.Logger) {
	if o.logo != nil {
		o.marker.Apply(canvas, o.logo)
		return
	}
	if o.watermarkText == "" {
		return
	}

	size := float64(canvas.Bounds().Dx()) / 20
	face, err := o.fonts.Face(size)
	if err != nil {
		log.Warn().Err(err).Msg("watermark skipped")
		return
	}
	o.marker.ApplyText(canvas, o.watermarkText, face)
}
