package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/component"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/tilemap"
)

var testGeometry = tilemap.Geometry{TileSize: 32, OffsetX: 16, OffsetY: 16}

type fixture struct {
	ecs        *entity.ECS
	field      *tilemap.Field
	factory    *ai.Factory
	dispatcher *event.Dispatcher
	events     []event.Event
}

// newFixture builds a 10x5 field with the spawner at (0,2) and the goal at
// (9,2).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib, err := defs.LoadEmbedded()
	require.NoError(t, err)
	fx := &fixture{
		ecs:        entity.NewECS(),
		field:      tilemap.NewField(10, 5, tilemap.Location{X: 0, Y: 2}, tilemap.Location{X: 9, Y: 2}, testGeometry),
		factory:    ai.NewFactory(lib),
		dispatcher: event.NewDispatcher(),
	}
	record := event.ListenerFunc(func(e event.Event) { fx.events = append(fx.events, e) })
	for _, et := range []event.EventType{
		event.EnemySpawned, event.EnemyKilled, event.GoalReached, event.TowerDestroyed,
		event.BulletHit, event.WaveEnded, event.GameOver,
	} {
		fx.dispatcher.Subscribe(et, record)
	}
	return fx
}

func (fx *fixture) lib() *defs.Library      { return fx.factory.Library() }
func (fx *fixture) getFactory() *ai.Factory { return fx.factory }

func (fx *fixture) center(loc tilemap.Location) utils.Vec2 {
	x, y := testGeometry.Center(loc)
	return utils.Vec2{X: x, Y: y}
}

func (fx *fixture) addEnemy(t *testing.T, defID string, loc tilemap.Location) types.EntityID {
	t.Helper()
	def := fx.lib().Enemies[defID]
	tree, err := fx.factory.EnemyTree(defID)
	require.NoError(t, err)
	id := fx.ecs.NewEntity()
	c := fx.center(loc)
	fx.ecs.Positions[id] = &component.Position{X: c.X, Y: c.Y}
	fx.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	fx.ecs.Healths[id] = component.NewHealth(def.Health)
	fx.ecs.Enemies[id] = &component.Enemy{DefID: defID, Tile: loc, FlatPaths: def.FlatPaths}
	fx.ecs.EnemyBrains[id] = &component.EnemyBrain{Tree: tree}
	return id
}

func (fx *fixture) addTower(t *testing.T, defID string, loc tilemap.Location) types.EntityID {
	t.Helper()
	def := fx.lib().Towers[defID]
	tree, err := fx.factory.TowerTree(defID)
	require.NoError(t, err)
	id := fx.ecs.NewEntity()
	require.True(t, fx.field.Occupy(loc, uint64(id)))
	c := fx.center(loc)
	fx.ecs.Positions[id] = &component.Position{X: c.X, Y: c.Y}
	fx.ecs.Healths[id] = component.NewHealth(def.Health)
	fx.ecs.Towers[id] = &component.Tower{DefID: defID, Tile: loc}
	fx.ecs.Cooldowns[id] = component.NewTowerCooldowns(def.Ammo)
	fx.ecs.Turrets[id] = &component.Turret{TurnSpeed: 10}
	fx.ecs.TowerBrains[id] = &component.TowerBrain{Tree: tree}
	return id
}

func (fx *fixture) eventsOf(et event.EventType) []event.Event {
	var out []event.Event
	for _, e := range fx.events {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}
