// internal/system/movement.go
package system

import (
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/tilemap"
)

// MovementSystem applies enemy move intents.
type MovementSystem struct {
	ecs   *entity.ECS
	field *tilemap.Field
}

func NewMovementSystem(ecs *entity.ECS, field *tilemap.Field) *MovementSystem {
	return &MovementSystem{ecs: ecs, field: field}
}

// Update moves every enemy along its intent and flags arrivals at the goal.
// An enemy never steps onto a blocked tile; it stops at the border instead.
func (s *MovementSystem) Update(deltaTime float64) {
	g := s.field.Geometry()
	for _, id := range entity.SortedIDs(s.ecs.EnemyBrains) {
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		enemy := s.ecs.Enemies[id]
		if !hasPos || !hasVel {
			continue
		}
		vel.Direction = s.ecs.EnemyBrains[id].Intent.MoveTowards
		if vel.Direction.IsZero() {
			continue
		}

		next := pos.Vec().Add(vel.Vector().Scale(deltaTime))
		loc := g.Locate(next.X, next.Y)
		if !s.field.InBounds(loc) || !s.field.IsPathable(loc) {
			vel.Direction = utils.Vec2{}
			continue
		}
		pos.Set(next)
		enemy.Tile = loc
		if s.field.IsGoal(loc) {
			enemy.ReachedGoal = true
		}
	}
}
