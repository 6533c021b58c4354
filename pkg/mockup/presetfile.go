// presetfile.go — JSON preset files: a registered base plus overrides.
package mockup

import (
	"encoding/json"
	"fmt"
	"os"
)

// presetFile is the on-disk shape: pick a registered base, override knobs.
type presetFile struct {
	Base      string    `json:"base"`
	Overrides Overrides `json:"overrides"`
}

// ParsePresetFile loads a preset JSON file. The file names a registered base
// preset and optionally overrides individual knobs.
func ParsePresetFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}

	var pf presetFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return Preset{}, fmt.Errorf("parse preset JSON: %w", err)
	}
	if pf.Base == "" {
		pf.Base = "pattern"
	}

	base, err := PresetFor(pf.Base)
	if err != nil {
		return Preset{}, err
	}
	return base.With(pf.Overrides), nil
}

// ExampleJSON returns a starter preset file for the init flow.
func ExampleJSON() string {
	return `{
  "base": "pattern",
  "overrides": {
    "textColor": "#2b2b2b",
    "watermarkOpacity": 35,
    "cellPadding": 40
  }
}`
}
