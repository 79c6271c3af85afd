package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// EmbeddedFont names the built-in fallback in logs.
const EmbeddedFont = "embedded:goregular"

// DefaultFontPaths are tried in order. DejaVu Sans and Arial Unicode cover
// the Vietnamese precomposed letters.
var DefaultFontPaths = []string{
	"DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"Arial Unicode.ttf",
	"Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
	`C:\Windows\Fonts\arialuni.ttf`,
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
}

// LoadFont returns the first parsable font among paths together with the
// path it came from. When none parses it falls back to the embedded Go font.
func LoadFont(paths []string) (*opentype.Font, string, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		return f, p, nil
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return f, EmbeddedFont, nil
}
