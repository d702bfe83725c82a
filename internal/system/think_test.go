package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/internal/metrics"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

func TestThinkEnemyFollowsPath(t *testing.T) {
	fx := newFixture(t)
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	think := NewThinkSystem(fx.ecs, fx.field, 1.0, nil, nil)

	view := think.EnemyView(id)
	require.NotNil(t, view.ShortestPaths)
	assert.Equal(t, 9, view.ShortestPaths.Cost)
	assert.Len(t, view.ShortestPaths.Paths, 1)
	assert.Equal(t, 9, view.DistanceFromGoal)
	assert.Equal(t, 3, view.Health)

	think.Update(1.0 / 60)
	brain := fx.ecs.EnemyBrains[id]
	assert.Equal(t, bt.Complete, brain.State)
	assert.Equal(t, utils.Vec2{X: 1}, brain.Intent.MoveTowards)
}

func TestThinkUsesPathCaches(t *testing.T) {
	fx := newFixture(t)
	fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	fx.addEnemy(t, "seeker", tilemap.Location{X: 1, Y: 2})
	rec := metrics.New(false)
	think := NewThinkSystem(fx.ecs, fx.field, 1.0, rec, nil)

	think.Update(0.1)
	weighted, flat := think.Caches()
	assert.Equal(t, 1, weighted.Len(), "both basics share one entry")
	assert.Equal(t, 1, flat.Len())

	// a death marker makes the weighted route detour, but only once the
	// cached bag goes stale
	fx.field.IncrementTileCost(tilemap.Location{X: 1, Y: 2}, 10)
	fx.ecs.GameTime = 0.5
	first := fx.ecs.Enemies[1].Tile
	cached := think.EnemyView(1).ShortestPaths
	assert.Equal(t, 9, cached.Cost)

	fx.ecs.GameTime = 1.0
	fresh := think.EnemyView(1).ShortestPaths
	assert.Equal(t, first, fresh.Paths[0][0])
	assert.Equal(t, 11, fresh.Cost)
	for _, p := range fresh.Paths {
		assert.NotEqual(t, tilemap.Location{X: 1, Y: 2}, p[1])
	}
}

func TestThinkUnreachableGoal(t *testing.T) {
	fx := newFixture(t)
	for y := range 5 {
		require.True(t, fx.field.Occupy(tilemap.Location{X: 5, Y: y}, 100))
	}
	id := fx.addEnemy(t, "basic", tilemap.Location{X: 0, Y: 2})
	think := NewThinkSystem(fx.ecs, fx.field, 1.0, nil, nil)
	think.Audit = &bt.Audit{}

	think.Update(0.1)
	assert.Nil(t, think.EnemyView(id).ShortestPaths)
	assert.Equal(t, bt.Complete, fx.ecs.EnemyBrains[id].State, "idle fallback")
	assert.Equal(t, []string{"no-path"}, think.Audit.Labels("pathfind"))
	weighted, _ := think.Caches()
	assert.Zero(t, weighted.Len(), "failures are not cached")
}

func TestThinkTowerSeesEnemiesAndNeighbors(t *testing.T) {
	fx := newFixture(t)
	tower := fx.addTower(t, "attack", tilemap.Location{X: 3, Y: 1})
	silo := fx.addTower(t, "silo", tilemap.Location{X: 4, Y: 1})
	enemy := fx.addEnemy(t, "basic", tilemap.Location{X: 3, Y: 2})
	fx.ecs.Velocities[enemy].Direction = utils.Vec2{X: 1}
	think := NewThinkSystem(fx.ecs, fx.field, 1.0, nil, nil)

	ev := think.EnemyView(enemy)
	require.Len(t, ev.NeighborTowers, 1)
	assert.Equal(t, tower, ev.NeighborTowers[0].ID)

	think.Update(0.1)
	intent := fx.ecs.TowerBrains[tower].Intent
	assert.True(t, intent.FireNow)
	assert.Equal(t, enemy, intent.AttackEnemy)
	assert.Equal(t, "basic", intent.Fire.Bullet)

	siloIntent := fx.ecs.TowerBrains[silo].Intent
	assert.Equal(t, tower, siloIntent.Assist)

	tv := think.TowerView(tower, 0.1, think.enemyRefs())
	require.Len(t, tv.Enemies, 1)
	assert.Equal(t, utils.Vec2{X: 40}, tv.Enemies[0].Velocity)
	require.Len(t, tv.NeighborTowers, 1)
	assert.Equal(t, silo, tv.NeighborTowers[0].ID)
}

func TestThinkAdvancesTowerClocks(t *testing.T) {
	fx := newFixture(t)
	tower := fx.addTower(t, "attack", tilemap.Location{X: 3, Y: 1})
	fx.ecs.Cooldowns[tower].TimeSinceShot = 0
	think := NewThinkSystem(fx.ecs, fx.field, 1.0, nil, nil)

	think.Update(0.25)
	assert.InDelta(t, 0.25, fx.ecs.Cooldowns[tower].TimeSinceShot, 1e-9)
	assert.Equal(t, bt.Waiting, fx.ecs.TowerBrains[tower].State)
}
