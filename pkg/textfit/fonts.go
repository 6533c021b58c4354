// fonts.go — Font loading with custom TTF/OTF support and embedded fallback.
// Uses golang.org/x/image/font for OpenType rendering. Falls back to the Go
// Regular font when no custom font is specified or when loading fails.
package textfit

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager parses a font once and hands out faces at arbitrary sizes.
// Faces are cheap to create; the parsed font is the expensive part, so the
// manager is safe to share across many mockup invocations (read-only).
type FontManager struct {
	parsed *opentype.Font
}

// NewFontManager loads the font at customPath, or the embedded Go Regular
// font when customPath is empty or unreadable. Falling back on a configured
// path is logged so a typo in a font name stays diagnosable.
func NewFontManager(customPath string, log zerolog.Logger) (*FontManager, error) {
	var data []byte
	if customPath != "" {
		var err error
		data, err = os.ReadFile(customPath)
		if err != nil {
			log.Warn().Err(err).Str("font", customPath).Msg("custom font unreadable, using embedded default")
			data = nil
		}
	}
	if data == nil {
		data = goregular.TTF
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontManager{parsed: parsed}, nil
}

// Face returns a rendering face at the given point size (72 DPI).
func (fm *FontManager) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %.0f: %w", size, err)
	}
	return face, nil
}
