// internal/app/towers.go
package app

import (
	"errors"
	"fmt"

	"ten-second-towers/internal/component"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/system"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/tilemap"
)

var (
	ErrUnknownTower          = errors.New("unknown tower")
	ErrTileUnavailable       = errors.New("tile unavailable")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrBlocksPath            = errors.New("tower would block the path to the goal")
	ErrNoTower               = errors.New("no tower on tile")
)

// PlaceTower buys a tower of kind defID and puts it on loc.
func (g *Game) PlaceTower(defID string, loc tilemap.Location) (types.EntityID, error) {
	def, ok := g.Library().Towers[defID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTower, defID)
	}
	if err := g.canPlaceTower(loc); err != nil {
		return 0, err
	}
	state := g.ECS.GameState
	if !state.Resources.Covers(def.Cost) {
		return 0, fmt.Errorf("%w: %s needs %+v, have %+v", ErrInsufficientResources, defID, def.Cost, state.Resources)
	}
	tree, err := g.factory.TowerTree(defID)
	if err != nil {
		return 0, err
	}

	id := g.ECS.NewEntity()
	g.field.Occupy(loc, uint64(id))
	x, y := g.field.Geometry().Center(loc)
	g.ECS.Positions[id] = &component.Position{X: x, Y: y}
	g.ECS.Healths[id] = component.NewHealth(def.Health)
	g.ECS.Towers[id] = &component.Tower{DefID: defID, Tile: loc}
	g.ECS.Cooldowns[id] = component.NewTowerCooldowns(def.Ammo)
	g.ECS.Turrets[id] = &component.Turret{TurnSpeed: config.TurretTurnSpeed}
	g.ECS.TowerBrains[id] = &component.TowerBrain{Tree: tree}
	g.ECS.Renderables[id] = &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(config.TileSize * def.Visuals.RadiusFactor),
		HasStroke: true,
	}
	state.Resources = state.Resources.Sub(def.Cost)

	g.logger.Info("tower placed", "tower", id, "type", defID, "tile", loc)
	g.EventDispatcher.Dispatch(event.Event{
		Type: event.TowerPlaced,
		Data: event.TowerData{ID: id, DefID: defID, Tile: loc},
	})
	return id, nil
}

// RemoveTower deconstructs the tower on loc and returns its refund.
func (g *Game) RemoveTower(loc tilemap.Location) (defs.Resources, error) {
	if !g.field.InBounds(loc) {
		return defs.Resources{}, fmt.Errorf("%w: %v outside the field", ErrNoTower, loc)
	}
	owner, blocked := g.field.Owner(loc)
	id := types.EntityID(owner)
	tower, ok := g.ECS.Towers[id]
	if !blocked || !ok {
		return defs.Resources{}, fmt.Errorf("%w: %v", ErrNoTower, loc)
	}
	refund := g.Library().Towers[tower.DefID].Refund

	g.field.Vacate(loc)
	g.ECS.Remove(id)
	g.ECS.GameState.Resources = g.ECS.GameState.Resources.Add(refund)

	g.logger.Info("tower removed", "tower", id, "type", tower.DefID, "tile", loc)
	g.EventDispatcher.Dispatch(event.Event{
		Type: event.TowerRemoved,
		Data: event.TowerData{ID: id, DefID: tower.DefID, Tile: loc},
	})
	return refund, nil
}

// TowerAt returns the tower standing on loc.
func (g *Game) TowerAt(loc tilemap.Location) (types.EntityID, bool) {
	if !g.field.InBounds(loc) {
		return 0, false
	}
	owner, blocked := g.field.Owner(loc)
	if !blocked {
		return 0, false
	}
	_, ok := g.ECS.Towers[types.EntityID(owner)]
	return types.EntityID(owner), ok
}

func (g *Game) canPlaceTower(loc tilemap.Location) error {
	if !g.field.CanOccupy(loc) {
		return fmt.Errorf("%w: %v", ErrTileUnavailable, loc)
	}
	if len(system.EnemiesAt(g.ECS, loc)) > 0 {
		return fmt.Errorf("%w: %v has enemies on it", ErrTileUnavailable, loc)
	}
	if g.isPathBlockedBy(loc) {
		return fmt.Errorf("%w: %v", ErrBlocksPath, loc)
	}
	return nil
}

// isPathBlockedBy reports whether blocking loc would cut the spawner off
// from the goal.
func (g *Game) isPathBlockedBy(loc tilemap.Location) bool {
	g.field.Occupy(loc, 0)
	defer g.field.Vacate(loc)
	_, ok := tilemap.ShortestPaths(g.field, g.field.Source(), g.field.FlatNeighbors)
	return !ok
}
