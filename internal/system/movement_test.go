package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/tilemap"
)

func TestMovementFollowsIntent(t *testing.T) {
	fx := newFixture(t)
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	move := NewMovementSystem(fx.ecs, fx.field)

	fx.ecs.EnemyBrains[id].Intent.MoveTowards = utils.Vec2{X: 1}
	move.Update(0.5) // speed 40

	start := fx.center(tilemap.Location{X: 0, Y: 2})
	assert.Equal(t, start.Add(utils.Vec2{X: 20}), fx.ecs.Positions[id].Vec())
	assert.Equal(t, tilemap.Location{X: 1, Y: 2}, fx.ecs.Enemies[id].Tile)
	assert.Equal(t, utils.Vec2{X: 1}, fx.ecs.Velocities[id].Direction)
}

func TestMovementStopsAtBlockedTile(t *testing.T) {
	fx := newFixture(t)
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	fx.addTower(t, "attack", tilemap.Location{X: 1, Y: 2})
	move := NewMovementSystem(fx.ecs, fx.field)

	before := fx.ecs.Positions[id].Vec()
	fx.ecs.EnemyBrains[id].Intent.MoveTowards = utils.Vec2{X: 1}
	move.Update(0.5)
	assert.Equal(t, before, fx.ecs.Positions[id].Vec())
	assert.True(t, fx.ecs.Velocities[id].Direction.IsZero())

	fx.ecs.EnemyBrains[id].Intent.MoveTowards = utils.Vec2{X: -1}
	move.Update(1)
	assert.Equal(t, before, fx.ecs.Positions[id].Vec(), "cannot leave the field")
}

func TestMovementFlagsGoal(t *testing.T) {
	fx := newFixture(t)
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 8, Y: 2})
	move := NewMovementSystem(fx.ecs, fx.field)

	fx.ecs.EnemyBrains[id].Intent.MoveTowards = utils.Vec2{X: 1}
	move.Update(0.5)
	assert.True(t, fx.ecs.Enemies[id].ReachedGoal)
}

func TestFieldSystemDecaysAndLocates(t *testing.T) {
	fx := newFixture(t)
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	loc := tilemap.Location{X: 4, Y: 4}
	fx.field.IncrementTileCost(loc, 3)
	fs := NewFieldSystem(fx.ecs, fx.field, 2.0, nil)

	fx.ecs.Positions[id].Set(fx.center(tilemap.Location{X: 5, Y: 1}))
	fs.Update(1.0)
	assert.Equal(t, tilemap.Location{X: 5, Y: 1}, fx.ecs.Enemies[id].Tile)
	assert.Equal(t, []types.EntityID{id}, EnemiesAt(fx.ecs, tilemap.Location{X: 5, Y: 1}))
	assert.Equal(t, 4, fx.field.Cost(loc))

	fs.Update(1.0)
	assert.Equal(t, 3, fx.field.Cost(loc))
	fs.Update(5.0)
	assert.Equal(t, 1, fx.field.Cost(loc))

	off := NewFieldSystem(fx.ecs, fx.field, 0, nil)
	fx.field.IncrementTileCost(loc, 1)
	off.Update(100)
	assert.Equal(t, 2, fx.field.Cost(loc))
}
