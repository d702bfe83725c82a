// internal/ui/font.go
package ui

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts are the faces shared by the HUD and the field labels.
type Fonts struct {
	Small   font.Face
	Regular font.Face
	Title   font.Face
}

// LoadFonts parses the embedded Go Regular typeface at the HUD sizes.
func LoadFonts() (*Fonts, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := func(size float64) (font.Face, error) {
		return opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	var fonts Fonts
	for _, f := range []struct {
		dst  *font.Face
		size float64
	}{
		{&fonts.Small, 10},
		{&fonts.Regular, 14},
		{&fonts.Title, 28},
	} {
		if *f.dst, err = face(f.size); err != nil {
			return nil, fmt.Errorf("failed to create %vpt face: %w", f.size, err)
		}
	}
	return &fonts, nil
}
