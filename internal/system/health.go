package system

import (
	"log/slog"

	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/pkg/tilemap"
)

// HealthSystem removes dead enemies and enemies that reached the goal.
// A death raises the cost of the tile it happened on so later paths avoid
// it, and pays the enemy's loot.
type HealthSystem struct {
	ecs        *entity.ECS
	field      *tilemap.Field
	dispatcher *event.Dispatcher
	logger     *slog.Logger
	lib        func() *defs.Library
	over       bool
}

func NewHealthSystem(ecs *entity.ECS, field *tilemap.Field, dispatcher *event.Dispatcher, lib func() *defs.Library, logger *slog.Logger) *HealthSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthSystem{ecs: ecs, field: field, dispatcher: dispatcher, lib: lib, logger: logger}
}

func (s *HealthSystem) Update(float64) {
	state := s.ecs.GameState
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		enemy := s.ecs.Enemies[id]
		def := s.lib().Enemies[enemy.DefID]
		data := event.EnemyData{ID: id, DefID: enemy.DefID, Tile: enemy.Tile}

		switch {
		case !s.ecs.Healths[id].Alive():
			if def.DeathCost > 0 {
				s.field.IncrementTileCost(enemy.Tile, def.DeathCost)
			}
			state.Resources = state.Resources.Add(def.Loot)
			state.Kills++
			data.Loot = def.Loot
			s.ecs.Remove(id)
			s.dispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: data})

		case enemy.ReachedGoal:
			state.BaseHealth--
			state.Leaks++
			s.ecs.Remove(id)
			s.logger.Info("enemy reached the goal", "enemy", id, "type", enemy.DefID, "base_health", state.BaseHealth)
			s.dispatcher.Dispatch(event.Event{Type: event.GoalReached, Data: data})
		}
	}
	if state.Over() && !s.over {
		s.over = true
		s.logger.Info("game over", "wave", s.ecs.Wave.Number, "kills", state.Kills)
		s.dispatcher.Dispatch(event.Event{Type: event.GameOver})
	}
}
