// internal/system/projectile.go
package system

import (
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
)

// ProjectileSystem moves bullets, expires them and applies hits.
type ProjectileSystem struct {
	ecs        *entity.ECS
	dispatcher *event.Dispatcher
}

func NewProjectileSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, dispatcher: dispatcher}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			s.ecs.Remove(id)
			continue
		}
		pos.Set(pos.Vec().Add(proj.Velocity.Scale(deltaTime)))
		proj.Remaining -= deltaTime

		if target, hit := s.findHit(pos.Vec(), proj.HitRadius); hit {
			s.ecs.Healths[target].Damage(proj.Damage)
			s.ecs.Remove(id)
			s.dispatcher.Dispatch(event.Event{
				Type: event.BulletHit,
				Data: event.HitData{Bullet: id, Target: target, Damage: proj.Damage},
			})
			continue
		}
		if proj.Remaining <= 0 {
			s.ecs.Remove(id)
		}
	}
}

// findHit returns the closest live enemy whose body overlaps the bullet.
func (s *ProjectileSystem) findHit(at utils.Vec2, radius float64) (types.EntityID, bool) {
	reach := radius + config.EnemyRadius
	var (
		best     types.EntityID
		bestDist float64
		found    bool
	)
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		h, ok := s.ecs.Healths[id]
		if !ok || !h.Alive() {
			continue
		}
		d := at.DistanceSquared(s.ecs.Positions[id].Vec())
		if d > reach*reach {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}
