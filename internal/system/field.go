package system

import (
	"log/slog"

	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/tilemap"
)

// FieldSystem keeps enemy tiles in sync with their positions and decays
// raised tile costs back toward the baseline.
type FieldSystem struct {
	ecs           *entity.ECS
	field         *tilemap.Field
	logger        *slog.Logger
	decayInterval float64
	sinceDecay    float64
}

// NewFieldSystem creates the system. A zero decayInterval disables decay.
func NewFieldSystem(ecs *entity.ECS, field *tilemap.Field, decayInterval float64, logger *slog.Logger) *FieldSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldSystem{ecs: ecs, field: field, decayInterval: decayInterval, logger: logger}
}

func (s *FieldSystem) Update(deltaTime float64) {
	s.locateEnemies()
	if s.decayInterval <= 0 {
		return
	}
	s.sinceDecay += deltaTime
	for s.sinceDecay >= s.decayInterval {
		s.sinceDecay -= s.decayInterval
		if n := s.field.DecayCosts(); n > 0 {
			s.logger.Debug("tile costs decayed", "tiles", n)
		}
	}
}

// locateEnemies updates Enemy.Tile from the enemy position. Positions off
// the field keep the last known tile.
func (s *FieldSystem) locateEnemies() {
	g := s.field.Geometry()
	for id, enemy := range s.ecs.Enemies {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if loc := g.Locate(pos.X, pos.Y); s.field.InBounds(loc) {
			enemy.Tile = loc
		}
	}
}

// EnemiesAt returns the enemies standing on loc, in id order.
func EnemiesAt(ecs *entity.ECS, loc tilemap.Location) []types.EntityID {
	var ids []types.EntityID
	for _, id := range entity.SortedIDs(ecs.Enemies) {
		if ecs.Enemies[id].Tile == loc {
			ids = append(ids, id)
		}
	}
	return ids
}
