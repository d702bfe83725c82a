package state

import (
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/render"
)

// sprites collects everything drawable in draw order: towers, enemies,
// then bullets.
func sprites(ecs *entity.ECS) []render.Sprite {
	var out []render.Sprite
	for _, group := range [][]types.EntityID{
		entity.SortedIDs(ecs.Towers),
		entity.SortedIDs(ecs.Enemies),
		entity.SortedIDs(ecs.Projectiles),
	} {
		for _, id := range group {
			pos, ok := ecs.Positions[id]
			if !ok {
				continue
			}
			r, ok := ecs.Renderables[id]
			if !ok {
				continue
			}
			s := render.Sprite{X: pos.X, Y: pos.Y, Radius: r.Radius, Color: r.Color, Stroke: r.HasStroke, Health: 1}
			if h, ok := ecs.Healths[id]; ok && h.Max > 0 {
				s.Health = float64(h.Value) / float64(h.Max)
			}
			if t, ok := ecs.Turrets[id]; ok {
				s.Barrel = float32(config.TowerRadius)
				s.Angle = t.Angle
			}
			out = append(out, s)
		}
	}
	return out
}
