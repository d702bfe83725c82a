package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"ten-second-towers/internal/config"
	"ten-second-towers/internal/utils"
)

// WaveIndicator shows the wave number in Roman numerals over a bar that
// drains with the wave countdown.
type WaveIndicator struct {
	X, Y             float32
	Width            float32
	Color            color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int
}

func NewWaveIndicator(x, y, width float32) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Width:            width,
		Color:            color.RGBA{70, 130, 180, 255},
		OutlineColor:     color.RGBA{255, 255, 255, 255},
		OutlineThickness: 1,
	}
}

// Draw renders the indicator. Wave 0 is the build phase and shows only the
// countdown.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, waveNumber int, timeLeft, length float64) {
	frac := float32(max(0, min(1, timeLeft/length)))
	vector.DrawFilledRect(screen, i.X, i.Y+34, i.Width, 4, config.HUDColor, false)
	vector.DrawFilledRect(screen, i.X, i.Y+34, i.Width*frac, 4, i.Color, false)

	label := utils.ToRoman(waveNumber)
	if label == "" {
		return
	}
	textColor := i.Color
	if waveNumber%10 == 0 {
		textColor = color.RGBA{220, 40, 40, 255} // boss waves
	}
	bounds := text.BoundString(face, label)
	x := int(i.X+i.Width/2) - bounds.Dx()/2
	y := int(i.Y) + 28
	for dy := -i.OutlineThickness; dy <= i.OutlineThickness; dy++ {
		for dx := -i.OutlineThickness; dx <= i.OutlineThickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, face, x+dx, y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, x, y, textColor)
}
