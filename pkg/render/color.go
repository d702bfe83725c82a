// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the field.
type MapColors struct {
	BackgroundColor color.RGBA
	TileColor       color.RGBA
	BlockedColor    color.RGBA
	SpawnerColor    color.RGBA
	GoalColor       color.RGBA
	CostColor       color.RGBA
	PathColor       color.RGBA
	TextDarkColor   color.RGBA
	TextLightColor  color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor adds delta to every channel, saturating at 255.
func LightenColor(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+delta)),
		G: uint8(min(255, int(c.G)+delta)),
		B: uint8(min(255, int(c.B)+delta)),
		A: c.A,
	}
}

// BlendColor mixes a and b; t=0 gives a, t=1 gives b.
func BlendColor(a, b color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// TextColorOn picks the readable label color for a fill.
func (c *MapColors) TextColorOn(fill color.RGBA) color.RGBA {
	if (int(fill.R)+int(fill.G)+int(fill.B))/3 > 128 {
		return c.TextDarkColor
	}
	return c.TextLightColor
}
