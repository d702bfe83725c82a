// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/bt"
)

const (
	panelWidth     = 260
	panelMargin    = 5
	animationSpeed = 20.0
	lineHeight     = 18
)

// InfoPanel slides in from the right and describes the selected tower or
// enemy, including the shape and latest outcome of its behavior tree.
type InfoPanel struct {
	IsVisible     bool
	TargetEntity  types.EntityID
	fontFace      font.Face
	titleFontFace font.Face
	currentX      float64
	targetX       float64
}

func NewInfoPanel(face, titleFace font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace:      face,
		titleFontFace: titleFace,
		currentX:      config.ScreenWidth,
		targetX:       config.ScreenWidth,
	}
}

func (p *InfoPanel) SetTarget(id types.EntityID) {
	p.TargetEntity = id
	p.IsVisible = true
	p.targetX = config.ScreenWidth - panelWidth
}

func (p *InfoPanel) Hide() {
	p.targetX = config.ScreenWidth
}

// Contains reports whether a screen point falls on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && x >= int(p.currentX) && y >= config.HUDHeight
}

func (p *InfoPanel) Update(ecs *entity.ECS) {
	if p.IsVisible && !entityExists(ecs, p.TargetEntity) {
		p.Hide()
	}
	if p.currentX == p.targetX {
		return
	}
	diff := p.targetX - p.currentX
	switch {
	case math.Abs(diff) < animationSpeed:
		p.currentX = p.targetX
	case diff > 0:
		p.currentX += animationSpeed
	default:
		p.currentX -= animationSpeed
	}
	if p.currentX >= config.ScreenWidth {
		p.IsVisible = false
		p.TargetEntity = 0
	}
}

func entityExists(ecs *entity.ECS, id types.EntityID) bool {
	_, tower := ecs.Towers[id]
	_, enemy := ecs.Enemies[id]
	return tower || enemy
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ecs *entity.ECS, lib *defs.Library) {
	if !p.IsVisible {
		return
	}
	rect := image.Rect(
		int(p.currentX)+panelMargin,
		config.HUDHeight+panelMargin,
		int(p.currentX)+panelWidth-panelMargin,
		config.ScreenHeight-panelMargin,
	)
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), 2, borderColor, true)

	x, y := rect.Min.X+12, rect.Min.Y+30
	var lines []string
	if tower, ok := ecs.Towers[p.TargetEntity]; ok {
		def := lib.Towers[tower.DefID]
		text.Draw(screen, def.Name, p.titleFontFace, x, y, config.TextLightColor)
		lines = p.towerLines(ecs, def)
	} else if enemy, ok := ecs.Enemies[p.TargetEntity]; ok {
		def := lib.Enemies[enemy.DefID]
		text.Draw(screen, def.Name, p.titleFontFace, x, y, config.TextLightColor)
		lines = p.enemyLines(ecs, enemy.Boosts)
	}
	y += lineHeight + 8
	for _, line := range lines {
		text.Draw(screen, line, p.fontFace, x, y, config.TextLightColor)
		y += lineHeight
	}
}

func (p *InfoPanel) towerLines(ecs *entity.ECS, def defs.TowerDefinition) []string {
	id := p.TargetEntity
	var lines []string
	if def.Flavor != "" {
		lines = append(lines, def.Flavor)
	}
	if h, ok := ecs.Healths[id]; ok {
		lines = append(lines, fmt.Sprintf("Health: %d / %d", h.Value, h.Max))
	}
	if cd, ok := ecs.Cooldowns[id]; ok {
		lines = append(lines, fmt.Sprintf("Ammo: %d / %d", cd.Ammo, cd.MaxAmmo))
	}
	if t, ok := ecs.Towers[id]; ok {
		lines = append(lines, fmt.Sprintf("Shots: %d", t.ShotsFired))
	}
	if brain, ok := ecs.TowerBrains[id]; ok {
		lines = append(lines, "State: "+brain.State.String(), "")
		lines = append(lines, treeLines(bt.Describe(brain.Tree.Root()))...)
	}
	return lines
}

func (p *InfoPanel) enemyLines(ecs *entity.ECS, boosts int) []string {
	id := p.TargetEntity
	var lines []string
	if h, ok := ecs.Healths[id]; ok {
		lines = append(lines, fmt.Sprintf("Health: %d / %d", h.Value, h.Max))
	}
	if v, ok := ecs.Velocities[id]; ok {
		lines = append(lines, fmt.Sprintf("Speed: %.0f", v.Speed))
	}
	if boosts > 0 {
		lines = append(lines, fmt.Sprintf("Boosts: %d", boosts))
	}
	if brain, ok := ecs.EnemyBrains[id]; ok {
		lines = append(lines, "State: "+brain.State.String(), "")
		lines = append(lines, treeLines(bt.Describe(brain.Tree.Root()))...)
	}
	return lines
}

func treeLines(desc string) []string {
	return strings.Split(strings.TrimSuffix(desc, "\n"), "\n")
}
