// internal/system/wave.go
package system

import (
	"fmt"
	"log/slog"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/component"
	"ten-second-towers/internal/config"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/entity"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/tilemap"
)

// WaveSystem runs the wave clock. Every wave lasts a fixed length; its
// enemies enter from the spawner spread over the first seconds, at most one
// per tick. When the clock runs out the next wave starts regardless of the
// enemies still alive.
type WaveSystem struct {
	ecs         *entity.ECS
	field       *tilemap.Field
	dispatcher  *event.Dispatcher
	rng         *utils.PRNGService
	logger      *slog.Logger
	factory     func() *ai.Factory
	length      float64
	spawnWindow float64
}

func NewWaveSystem(ecs *entity.ECS, field *tilemap.Field, dispatcher *event.Dispatcher, rng *utils.PRNGService,
	factory func() *ai.Factory, length, spawnWindow float64, logger *slog.Logger) *WaveSystem {
	if logger == nil {
		logger = slog.Default()
	}
	s := &WaveSystem{
		ecs:         ecs,
		field:       field,
		dispatcher:  dispatcher,
		rng:         rng,
		logger:      logger,
		factory:     factory,
		length:      length,
		spawnWindow: spawnWindow,
	}
	// wave 0 is the opening build phase
	*ecs.Wave = component.Wave{Number: 0, TimeLeft: length}
	return s
}

func (s *WaveSystem) Update(deltaTime float64) {
	wave := s.ecs.Wave
	wave.TimeLeft -= deltaTime

	if len(wave.Queue) > 0 {
		wave.SpawnTimer -= deltaTime
		if wave.SpawnTimer <= 0 {
			next := wave.Queue[0]
			wave.Queue = wave.Queue[1:]
			wave.SpawnTimer += wave.SpawnDelay
			if _, err := s.Spawn(next.Enemy, next.Boosts); err != nil {
				s.logger.Warn("spawn failed", "enemy", next.Enemy, "error", err)
			}
		}
	}

	if wave.TimeLeft <= 0 {
		s.startWave(wave.Number + 1)
	}
}

func (s *WaveSystem) startWave(number int) {
	wave := s.ecs.Wave
	wave.TimeLeft += s.length
	wave.Number = number
	wave.Queue = ComposeWave(s.factory().Library().Waves, number, s.rng)
	wave.SpawnTimer = 0
	wave.SpawnDelay = 0
	if n := len(wave.Queue); n > 0 {
		wave.SpawnDelay = s.spawnWindow / float64(n)
	}
	s.logger.Info("wave started", "wave", number, "enemies", len(wave.Queue))
	s.dispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: event.WaveData{Number: number}})
}

// Spawn puts one enemy of the given kind on the spawner tile.
func (s *WaveSystem) Spawn(enemyID string, boosts int) (types.EntityID, error) {
	factory := s.factory()
	def, ok := factory.Library().Enemies[enemyID]
	if !ok {
		return 0, fmt.Errorf("unknown enemy %q", enemyID)
	}
	tree, err := factory.EnemyTree(enemyID)
	if err != nil {
		return 0, err
	}

	src := s.field.Source()
	x, y := s.field.Geometry().Center(src)
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{X: x, Y: y}
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.Healths[id] = component.NewHealth(def.Health + boosts*def.BoostHealth)
	s.ecs.Enemies[id] = &component.Enemy{
		DefID:     enemyID,
		Boosts:    boosts,
		Tile:      src,
		FlatPaths: def.FlatPaths,
	}
	s.ecs.EnemyBrains[id] = &component.EnemyBrain{Tree: tree}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(config.TileSize * def.Visuals.RadiusFactor),
		HasStroke: boosts > 0,
	}
	s.dispatcher.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.EnemyData{ID: id, DefID: enemyID, Tile: src},
	})
	return id, nil
}

// ComposeWave lists the enemies of wave number. Scripted waves are used
// as written. Later waves are rolled from the random table: the budget is
// number*BudgetPerWave, each roll picks a weighted entry (or the fallback
// when the entry is unaffordable) and, while the budget is above
// BoostAbove, also boosts one random spawn.
func ComposeWave(table defs.WaveTable, number int, rng *utils.PRNGService) []component.PendingSpawn {
	if number <= 0 {
		return nil
	}
	if w, ok := table.ScriptedWave(number); ok {
		var queue []component.PendingSpawn
		for _, sp := range w.Spawns {
			for range sp.Count {
				queue = append(queue, component.PendingSpawn{Enemy: sp.Enemy, Boosts: sp.Boosts})
			}
		}
		return queue
	}

	r := table.Random
	weights := make([]int, len(r.Entries))
	for i, e := range r.Entries {
		weights[i] = e.Weight
	}
	var queue []component.PendingSpawn
	budget := number * r.BudgetPerWave
	for budget > 0 {
		i := rng.ChooseWeighted(weights)
		if i >= 0 && (r.Entries[i].Cost <= 1 || budget > r.Entries[i].Cost) {
			e := r.Entries[i]
			for range e.Count {
				queue = append(queue, component.PendingSpawn{Enemy: e.Enemy})
			}
			budget -= e.Cost
		} else {
			queue = append(queue, component.PendingSpawn{Enemy: r.Fallback})
			budget--
		}
		if budget > r.BoostAbove && r.BoostCost > 0 {
			queue[rng.Intn(len(queue))].Boosts++
			budget -= r.BoostCost
		}
	}
	return queue
}
