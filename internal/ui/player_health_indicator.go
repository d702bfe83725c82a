// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCols          = 10
	HealthCircleRadius  = 5.0
	HealthCircleSpacing = 3.0
)

var (
	healthLowColor   = color.RGBA{220, 40, 40, 255}
	healthExtraColor = color.RGBA{60, 90, 220, 255}
	healthEmptyColor = color.RGBA{0, 0, 0, 255}
	healthRingColor  = color.RGBA{255, 255, 255, 255}
)

// PlayerHealthIndicator shows the base health as a grid of dots.
type PlayerHealthIndicator struct {
	X, Y float32
}

func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// Draw renders health out of maxHealth. Dots above half of maxHealth are
// blue; once health falls to half or below all remaining dots turn red.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, face font.Face, health, maxHealth int) {
	half := maxHealth / 2
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)
	for j := range maxHealth {
		cx := i.X + float32(j%HealthCols)*step + HealthCircleRadius
		cy := i.Y + float32(j/HealthCols)*step + HealthCircleRadius

		fill := healthEmptyColor
		if j < health {
			fill = healthLowColor
			if health > half && j < health-half {
				fill = healthExtraColor
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, fill, true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, healthRingColor, true)
	}

	label := strconv.Itoa(health) + "/" + strconv.Itoa(maxHealth)
	text.Draw(screen, label, face, int(i.X+float32(HealthCols)*step)+6, int(i.Y)+12, healthRingColor)
}
