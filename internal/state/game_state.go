// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"ten-second-towers/internal/app"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/ui"
	"ten-second-towers/pkg/render"
	"ten-second-towers/pkg/tilemap"
)

const (
	messageDuration  = 2.5 // seconds
	maxStepsPerFrame = 8
)

var numberKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// GameState plays a game: it steps the simulation at its fixed tick rate
// and turns mouse and keyboard input into tower placement.
type GameState struct {
	sm         *StateMachine
	game       *app.Game
	fonts      *ui.Fonts
	renderer   *render.FieldRenderer
	world      *ebiten.Image
	hud        *ui.HUD
	infoPanel  *ui.InfoPanel
	selected   string
	showPaths  bool
	message    string
	messageTTL float64
	pending    float64
}

func NewGameState(sm *StateMachine, g *app.Game, fonts *ui.Fonts) *GameState {
	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		TileColor:       config.TileColor,
		BlockedColor:    config.BlockedColor,
		SpawnerColor:    config.SpawnerColor,
		GoalColor:       config.GoalColor,
		CostColor:       config.CostColor,
		PathColor:       config.PathColor,
		TextDarkColor:   config.TextDarkColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}
	worldHeight := config.ScreenHeight - config.HUDHeight
	gs := &GameState{
		sm:        sm,
		game:      g,
		fonts:     fonts,
		renderer:  render.NewFieldRenderer(g.Field(), config.ScreenWidth, worldHeight, fonts.Small, mapColors),
		world:     ebiten.NewImage(config.ScreenWidth, worldHeight),
		hud:       ui.NewHUD(fonts),
		infoPanel: ui.NewInfoPanel(fonts.Regular, fonts.Title),
	}
	if ids := g.Library().TowerIDs(); len(ids) > 0 {
		gs.selected = ids[0]
	}
	return gs
}

func (g *GameState) Game() *app.Game { return g.game }

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sm.SetState(NewPauseState(g.sm, g, g.fonts.Title))
		return
	}
	g.handleKeys()
	g.handleMouse()
	g.infoPanel.Update(g.game.ECS)

	if g.messageTTL > 0 {
		g.messageTTL -= deltaTime
		if g.messageTTL <= 0 {
			g.message = ""
		}
	}
	g.advance(deltaTime)
}

// advance runs as many fixed ticks as the elapsed time covers, capped so a
// stalled frame cannot queue up unbounded work.
func (g *GameState) advance(deltaTime float64) {
	tick := g.game.Settings().Sim.TickDelta()
	g.pending += deltaTime * g.hud.SpeedButton.Multiplier()
	for steps := 0; g.pending >= tick; steps++ {
		if steps == maxStepsPerFrame*int(g.hud.SpeedButton.Multiplier()) {
			g.pending = 0
			break
		}
		g.game.Step(tick)
		g.pending -= tick
	}
}

func (g *GameState) handleKeys() {
	lib := g.game.Library()
	for i, key := range numberKeys {
		if inpututil.IsKeyJustPressed(key) {
			if def, ok := lib.TowerByHotkey(i + 1); ok {
				g.selected = def.ID
				g.say(def.Name + ": " + def.Flavor)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPaths = !g.showPaths
	}
}

func (g *GameState) handleMouse() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	x, y := ebiten.CursorPosition()
	if left && g.hud.SpeedButton.IsClicked(x, y) {
		g.hud.SpeedButton.ToggleState()
		return
	}
	if y < config.HUDHeight || g.infoPanel.Contains(x, y) {
		return
	}
	loc := g.tileAt(x, y)

	if right {
		if _, err := g.game.RemoveTower(loc); err != nil {
			g.sayErr(err)
		}
		return
	}
	if id, ok := g.findEntityAt(x, y); ok {
		g.infoPanel.SetTarget(id)
		return
	}
	g.infoPanel.Hide()
	if _, err := g.game.PlaceTower(g.selected, loc); err != nil {
		g.sayErr(err)
	}
}

func (g *GameState) tileAt(x, y int) tilemap.Location {
	return g.game.Field().Geometry().Locate(float64(x), float64(y-config.HUDHeight))
}

// findEntityAt finds the tower or enemy under a screen point.
func (g *GameState) findEntityAt(x, y int) (types.EntityID, bool) {
	if id, ok := g.game.TowerAt(g.tileAt(x, y)); ok {
		return id, true
	}
	wx, wy := float64(x), float64(y-config.HUDHeight)
	ecs := g.game.ECS
	for _, id := range entity.SortedIDs(ecs.Enemies) {
		pos := ecs.Positions[id]
		if math.Hypot(pos.X-wx, pos.Y-wy) < config.EnemyRadius+4 {
			return id, true
		}
	}
	return 0, false
}

func (g *GameState) say(msg string) {
	g.message = msg
	g.messageTTL = messageDuration
}

func (g *GameState) sayErr(err error) {
	switch {
	case errors.Is(err, app.ErrInsufficientResources):
		g.say("Not enough resources.")
	case errors.Is(err, app.ErrBlocksPath):
		g.say("That would block the path.")
	case errors.Is(err, app.ErrNoTower):
	default:
		g.say(err.Error())
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	field := g.game.Field()
	g.renderer.DrawField(g.world, field)
	if g.showPaths {
		if bag, ok := tilemap.ShortestPaths(field, field.Source(), field.Neighbors); ok {
			g.renderer.DrawPaths(g.world, field.Source(), bag)
		}
	}
	mx, my := ebiten.CursorPosition()
	if my >= config.HUDHeight {
		loc := g.tileAt(mx, my)
		g.renderer.DrawHighlight(g.world, loc, field.CanOccupy(loc))
	}
	g.renderer.DrawSprites(g.world, sprites(g.game.ECS))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, config.HUDHeight)
	screen.DrawImage(g.world, op)

	g.hud.Draw(screen, g.game, g.selected, g.message)
	g.infoPanel.Draw(screen, g.game.ECS, g.game.Library())

	if g.game.Over() {
		msg := fmt.Sprintf("GAME OVER - wave %d, %d kills", g.game.WaveNumber(), g.game.ECS.GameState.Kills)
		bounds := text.BoundString(g.fonts.Title, msg)
		text.Draw(screen, msg, g.fonts.Title, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.RGBA{255, 80, 80, 255})
	}
}

func (g *GameState) Exit() {}
