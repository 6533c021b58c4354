// overrides.go — Apply caller overrides onto preset defaults.
package mockup

// Overrides carries optional per-run adjustments from the CLI or a preset
// file. Nil fields inherit the preset value; the preset itself is never
// mutated.
type Overrides struct {
	FontFile         *string  `json:"fontFile,omitempty"`
	TextColor        *string  `json:"textColor,omitempty"`
	CellPadding      *int     `json:"cellPadding,omitempty"`
	RegionThreshold  *uint8   `json:"regionThreshold,omitempty"`
	RegionPadding    *int     `json:"regionPadding,omitempty"`
	StartSize        *int     `json:"startSize,omitempty"`
	MinSize          *int     `json:"minSize,omitempty"`
	LineSpacing      *int     `json:"lineSpacing,omitempty"`
	WatermarkOpacity *int     `json:"watermarkOpacity,omitempty"`
	WatermarkSpacing *float64 `json:"watermarkSpacing,omitempty"`
	WatermarkSize    *float64 `json:"watermarkSize,omitempty"`
	BackgroundColor  *string  `json:"backgroundColor,omitempty"`
	CollageScale     *float64 `json:"collageScale,omitempty"`
}

// With returns a copy of p with the non-nil override fields applied.
func (p Preset) With(o Overrides) Preset {
	if o.FontFile != nil {
		p.FontFile = *o.FontFile
	}
	if o.TextColor != nil {
		p.TextColor = *o.TextColor
	}
	if o.CellPadding != nil {
		p.CellPadding = *o.CellPadding
	}
	if o.RegionThreshold != nil {
		p.RegionThreshold = *o.RegionThreshold
	}
	if o.RegionPadding != nil {
		p.RegionPadding = *o.RegionPadding
	}
	if o.StartSize != nil {
		p.Text.StartSize = *o.StartSize
	}
	if o.MinSize != nil {
		p.Text.MinSize = *o.MinSize
	}
	if o.LineSpacing != nil {
		p.Text.LineSpacing = *o.LineSpacing
	}
	if o.WatermarkOpacity != nil {
		p.Watermark.OpacityPct = *o.WatermarkOpacity
	}
	if o.WatermarkSpacing != nil {
		p.Watermark.SpacingMultiplier = *o.WatermarkSpacing
	}
	if o.WatermarkSize != nil {
		p.Watermark.SizeRatio = *o.WatermarkSize
	}
	if o.BackgroundColor != nil {
		p.BackgroundColor = *o.BackgroundColor
	}
	if o.CollageScale != nil {
		p.CollageScale = *o.CollageScale
	}
	return p
}
