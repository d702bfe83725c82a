// internal/ai/tower_nodes.go
package ai

import (
	"cmp"
	"slices"

	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
)

// shotTracker remembers a fire command until the tower reports it applied.
type shotTracker struct {
	pending   bool
	firedWith uint64
}

// settle returns true once a pending shot was applied. A shot that was not
// applied is forgotten so the caller can attempt again.
func (s *shotTracker) settle(v *TowerView) bool {
	if !s.pending {
		return false
	}
	s.pending = false
	return v.ShotsFired > s.firedWith
}

func (s *shotTracker) fired(v *TowerView) {
	s.pending = true
	s.firedWith = v.ShotsFired
}

// FireBulletNode shoots a lead-aimed bullet at the nearest enemy in range.
// It waits for the cooldown and for ammo, waits while nothing is in range,
// and completes on the tick after its shot was applied.
type FireBulletNode struct {
	Bullet   defs.BulletDefinition
	Cooldown float64

	shot shotTracker
}

func NewFireBulletNode(bullet defs.BulletDefinition, cooldown float64) *FireBulletNode {
	return &FireBulletNode{Bullet: bullet, Cooldown: cooldown}
}

func (n *FireBulletNode) Resume(v *TowerView, intent *TowerIntent, _ *int, mark bt.Marker) bt.State {
	if n.shot.settle(v) {
		return bt.Complete
	}
	if v.TimeSinceShot < n.Cooldown {
		return bt.Waiting
	}
	if !v.HasAmmo {
		mark.Mark("no-ammo")
		return bt.Waiting
	}
	target, dir, ok := n.target(v)
	if !ok {
		mark.Mark("no-target")
		return bt.Waiting
	}
	intent.FaceTowards = dir
	intent.AttackEnemy = target.ID
	intent.FireNow = true
	intent.Fire = Shot{
		Bullet:   n.Bullet.ID,
		Velocity: dir.Scale(n.Bullet.Speed),
		Lifetime: n.Bullet.Lifetime,
	}
	n.shot.fired(v)
	return bt.Waiting
}

// target picks the nearest enemy whose intercept happens within the
// bullet's lifetime.
func (n *FireBulletNode) target(v *TowerView) (EnemyRef, utils.Vec2, bool) {
	order := make([]int, len(v.Enemies))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(
			v.Position.DistanceSquared(v.Enemies[a].Position),
			v.Position.DistanceSquared(v.Enemies[b].Position),
		)
	})
	for _, i := range order {
		e := v.Enemies[i]
		dir, t, ok := utils.LeadShot(v.Position, e.Position, e.Velocity, n.Bullet.Speed)
		if ok && t <= n.Bullet.Lifetime {
			return e, dir, true
		}
	}
	return EnemyRef{}, utils.Vec2{}, false
}

func (n *FireBulletNode) Reset(*TowerView) {
	n.shot = shotTracker{}
}

// FireFixedNode shoots in a fixed direction while any enemy is alive.
type FireFixedNode struct {
	Bullet    defs.BulletDefinition
	Cooldown  float64
	Direction utils.Vec2

	shot shotTracker
}

func NewFireFixedNode(bullet defs.BulletDefinition, cooldown float64, dir utils.Vec2) *FireFixedNode {
	return &FireFixedNode{Bullet: bullet, Cooldown: cooldown, Direction: dir.Normalize()}
}

func (n *FireFixedNode) Resume(v *TowerView, intent *TowerIntent, _ *int, mark bt.Marker) bt.State {
	if n.shot.settle(v) {
		return bt.Complete
	}
	if v.TimeSinceShot < n.Cooldown || !v.HasAmmo {
		return bt.Waiting
	}
	if len(v.Enemies) == 0 {
		mark.Mark("no-target")
		return bt.Waiting
	}
	intent.FaceTowards = n.Direction
	intent.FireNow = true
	intent.Fire = Shot{
		Bullet:   n.Bullet.ID,
		Velocity: n.Direction.Scale(n.Bullet.Speed),
		Lifetime: n.Bullet.Lifetime,
	}
	n.shot.fired(v)
	return bt.Waiting
}

func (n *FireFixedNode) Reset(*TowerView) {
	n.shot = shotTracker{}
}

// AssistNode hands ammo to neighboring towers in turn.
type AssistNode struct {
	rotation int
}

func (n *AssistNode) Resume(v *TowerView, intent *TowerIntent, _ *int, _ bt.Marker) bt.State {
	if len(v.NeighborTowers) == 0 {
		return bt.Failed
	}
	if !v.HasAmmo {
		return bt.Complete
	}
	t := v.NeighborTowers[n.rotation%len(v.NeighborTowers)]
	intent.Assist = t.ID
	intent.FaceTowards = t.Position.Sub(v.Position).Normalize()
	n.rotation++
	return bt.Waiting
}

func (n *AssistNode) Reset(*TowerView) {
	n.rotation = 0
}

// Rotation is the number of assists handed out since the last reset.
func (n *AssistNode) Rotation() int { return n.rotation }
