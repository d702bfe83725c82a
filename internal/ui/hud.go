package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ten-second-towers/internal/app"
	"ten-second-towers/internal/config"
)

// HUD is the strip along the top of the screen.
type HUD struct {
	Fonts       *Fonts
	Wave        *WaveIndicator
	Health      *PlayerHealthIndicator
	SpeedButton *SpeedButton
}

func NewHUD(fonts *Fonts) *HUD {
	return &HUD{
		Fonts:       fonts,
		Wave:        NewWaveIndicator(config.ScreenWidth/2-60, 2, 120),
		Health:      NewPlayerHealthIndicator(12, 8),
		SpeedButton: NewSpeedButton(config.ScreenWidth-30, config.HUDHeight/2, 10),
	}
}

// Draw renders the strip. selected is the tower kind placed by a left
// click and message a transient status line.
func (h *HUD) Draw(screen *ebiten.Image, g *app.Game, selected, message string) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.HUDHeight, config.HUDColor, false)

	h.Health.Draw(screen, h.Fonts.Small, g.BaseHealth(), g.Settings().Economy.BaseHealth)
	h.Wave.Draw(screen, h.Fonts.Title, g.WaveNumber(), g.WaveTimeLeft(), g.Settings().Waves.Length)
	h.SpeedButton.Draw(screen)

	res := g.Resources()
	resources := fmt.Sprintf("Minerals %d  Dust %d  Tech %d", res.Minerals, res.Dust, res.Tech)
	text.Draw(screen, resources, h.Fonts.Regular, config.ScreenWidth/2+90, 20, config.TextLightColor)

	lib := g.Library()
	palette := ""
	for _, id := range lib.TowerIDs() {
		def := lib.Towers[id]
		mark := " "
		if id == selected {
			mark = ">"
		}
		palette += fmt.Sprintf("%s%d %s  ", mark, def.Hotkey, def.Name)
	}
	text.Draw(screen, palette, h.Fonts.Small, config.ScreenWidth/2+90, 38, config.TextLightColor)

	if message != "" {
		text.Draw(screen, message, h.Fonts.Regular, 12, config.ScreenHeight-12, color.RGBA{255, 210, 120, 255})
	}
}
