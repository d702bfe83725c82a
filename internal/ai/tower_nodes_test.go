package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
)

var basicBullet = defs.BulletDefinition{ID: "basic", Speed: 320, Lifetime: 0.5, Damage: 1, HitRadius: 8}

func towerView(tss float64, enemies ...EnemyRef) *TowerView {
	return &TowerView{
		Agent:         1,
		DeltaSeconds:  0.1,
		TimeSinceShot: tss,
		Ammo:          5,
		HasAmmo:       true,
		Enemies:       enemies,
	}
}

func TestFireSequenceWaitsForCooldown(t *testing.T) {
	seq := bt.NewSequence[TowerView, TowerIntent]("triple",
		bt.NewLeaf[TowerView, TowerIntent]("first", NewFireBulletNode(basicBullet, 1.0)),
		bt.NewLeaf[TowerView, TowerIntent]("second", NewFireBulletNode(basicBullet, 0.1)),
		bt.NewLeaf[TowerView, TowerIntent]("third", NewFireBulletNode(basicBullet, 0.1)),
	)
	enemy := EnemyRef{ID: 9, Position: utils.Vec2{X: 100}}

	for tick := 0; tick < 10; tick++ {
		var intent TowerIntent
		state := seq.ResumeWith(towerView(float64(tick)*0.1, enemy), &intent, nil, nil)
		require.Equal(t, bt.Waiting, state, "tick %d", tick)
		require.False(t, intent.FireNow, "tick %d", tick)
	}

	var intent TowerIntent
	state := seq.ResumeWith(towerView(1.0, enemy), &intent, nil, nil)
	assert.Equal(t, bt.Waiting, state)
	assert.True(t, intent.FireNow)
	assert.Equal(t, "basic", intent.Fire.Bullet)
	assert.Equal(t, 9, int(intent.AttackEnemy))
	assert.InDelta(t, 320, intent.Fire.Velocity.X, 1e-9)
	assert.InDelta(t, 0, intent.Fire.Velocity.Y, 1e-9)
	assert.Equal(t, utils.Vec2{X: 1}, intent.FaceTowards)
	idx, _ := seq.Running()
	assert.Equal(t, 0, idx)
}

func TestFireBulletConfirmsAppliedShot(t *testing.T) {
	node := NewFireBulletNode(basicBullet, 0.5)
	enemy := EnemyRef{ID: 3, Position: utils.Vec2{X: 50}}

	var intent TowerIntent
	require.Equal(t, bt.Waiting, node.Resume(towerView(0.6, enemy), &intent, nil, bt.Marker{}))
	require.True(t, intent.FireNow)

	// the tower applied the shot and reset its timer
	applied := towerView(0.1, enemy)
	applied.ShotsFired = 1
	intent = TowerIntent{}
	assert.Equal(t, bt.Complete, node.Resume(applied, &intent, nil, bt.Marker{}))
	assert.False(t, intent.FireNow)
}

func TestFireBulletRetriesUnappliedShot(t *testing.T) {
	node := NewFireBulletNode(basicBullet, 0.5)
	enemy := EnemyRef{ID: 3, Position: utils.Vec2{X: 50}}

	var intent TowerIntent
	node.Resume(towerView(0.6, enemy), &intent, nil, bt.Marker{})

	intent = TowerIntent{}
	assert.Equal(t, bt.Waiting, node.Resume(towerView(0.7, enemy), &intent, nil, bt.Marker{}))
	assert.True(t, intent.FireNow, "fires again")
}

func TestFireBulletGates(t *testing.T) {
	tests := []struct {
		name  string
		view  *TowerView
		label string
	}{
		{"no enemies", towerView(2), "no-target"},
		{"out of range", towerView(2, EnemyRef{ID: 1, Position: utils.Vec2{X: 1000}}), "no-target"},
		{"no ammo", func() *TowerView {
			v := towerView(2, EnemyRef{ID: 1, Position: utils.Vec2{X: 10}})
			v.HasAmmo, v.Ammo = false, 0
			return v
		}(), "no-ammo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := bt.NewLeaf[TowerView, TowerIntent]("fire", NewFireBulletNode(basicBullet, 1))
			audit := &bt.Audit{}
			var intent TowerIntent
			assert.Equal(t, bt.Waiting, leaf.ResumeWith(tt.view, &intent, nil, audit))
			assert.False(t, intent.FireNow)
			assert.Equal(t, []string{tt.label}, audit.Labels("fire"))
		})
	}
}

func TestFireBulletPicksNearestReachable(t *testing.T) {
	node := NewFireBulletNode(basicBullet, 0)
	far := EnemyRef{ID: 1, Position: utils.Vec2{X: 150}}
	near := EnemyRef{ID: 2, Position: utils.Vec2{Y: -60}}
	// close but running away faster than the bullet
	fleeing := EnemyRef{ID: 3, Position: utils.Vec2{X: -20}, Velocity: utils.Vec2{X: -400}}

	var intent TowerIntent
	node.Resume(towerView(1, far, fleeing, near), &intent, nil, bt.Marker{})
	require.True(t, intent.FireNow)
	assert.Equal(t, 2, int(intent.AttackEnemy))
	assert.InDelta(t, -1, intent.FaceTowards.Y, 1e-9)
}

func TestFireBulletLeadsMovingTarget(t *testing.T) {
	node := NewFireBulletNode(basicBullet, 0)
	e := EnemyRef{ID: 1, Position: utils.Vec2{X: 100}, Velocity: utils.Vec2{Y: 40}}

	var intent TowerIntent
	node.Resume(towerView(1, e), &intent, nil, bt.Marker{})
	require.True(t, intent.FireNow)
	assert.Greater(t, intent.FaceTowards.Y, 0.0, "aims ahead of the target")
}

func TestFireFixed(t *testing.T) {
	node := NewFireFixedNode(basicBullet, 0.2, utils.Vec2{Y: 3})
	assert.Equal(t, utils.Vec2{Y: 1}, node.Direction)

	var intent TowerIntent
	assert.Equal(t, bt.Waiting, node.Resume(towerView(1), &intent, nil, bt.Marker{}), "no enemies")
	assert.False(t, intent.FireNow)

	assert.Equal(t, bt.Waiting, node.Resume(towerView(0.1, EnemyRef{ID: 1}), &intent, nil, bt.Marker{}), "cooling down")
	assert.False(t, intent.FireNow)

	assert.Equal(t, bt.Waiting, node.Resume(towerView(0.3, EnemyRef{ID: 1}), &intent, nil, bt.Marker{}))
	assert.True(t, intent.FireNow)
	assert.Equal(t, utils.Vec2{Y: 320}, intent.Fire.Velocity)

	applied := towerView(0, EnemyRef{ID: 1})
	applied.ShotsFired = 1
	assert.Equal(t, bt.Complete, node.Resume(applied, &TowerIntent{}, nil, bt.Marker{}))

	node.Resume(towerView(0.3, EnemyRef{ID: 1}), &intent, nil, bt.Marker{})
	node.Reset(nil)
	assert.Equal(t, bt.Waiting, node.Resume(applied, &TowerIntent{}, nil, bt.Marker{}), "reset forgets the pending shot")
}

func TestAssistRotates(t *testing.T) {
	node := &AssistNode{}
	view := towerView(0)
	view.NeighborTowers = []TowerRef{
		{ID: 10, Position: utils.Vec2{X: 32}},
		{ID: 11, Position: utils.Vec2{Y: 32}},
	}

	var got []int
	for range 3 {
		var intent TowerIntent
		require.Equal(t, bt.Waiting, node.Resume(view, &intent, nil, bt.Marker{}))
		got = append(got, int(intent.Assist))
	}
	assert.Equal(t, []int{10, 11, 10}, got)
	assert.Equal(t, 3, node.Rotation())

	node.Reset(view)
	var intent TowerIntent
	node.Resume(view, &intent, nil, bt.Marker{})
	assert.Equal(t, 10, int(intent.Assist))
	assert.Equal(t, utils.Vec2{X: 1}, intent.FaceTowards)
}

func TestAssistOutcomes(t *testing.T) {
	node := &AssistNode{}
	var intent TowerIntent
	assert.Equal(t, bt.Failed, node.Resume(towerView(0), &intent, nil, bt.Marker{}), "no neighbors")

	view := towerView(0)
	view.NeighborTowers = []TowerRef{{ID: 4}}
	view.HasAmmo = false
	assert.Equal(t, bt.Complete, node.Resume(view, &intent, nil, bt.Marker{}), "no ammo")
	assert.Zero(t, intent.Assist)
}
