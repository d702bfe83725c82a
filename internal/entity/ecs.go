// internal/entity/ecs.go
package entity

import (
	"fmt"
	"maps"
	"slices"

	"ten-second-towers/internal/ai"
	"ten-second-towers/internal/component"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/bt"
)

type ECS struct {
	GameTime float64
	Tick     uint64
	NextID   types.EntityID

	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Healths     map[types.EntityID]*component.Health
	Renderables map[types.EntityID]*component.Renderable
	Enemies     map[types.EntityID]*component.Enemy
	Towers      map[types.EntityID]*component.Tower
	Cooldowns   map[types.EntityID]*component.TowerCooldowns
	Turrets     map[types.EntityID]*component.Turret
	Projectiles map[types.EntityID]*component.Projectile
	EnemyBrains map[types.EntityID]*component.EnemyBrain
	TowerBrains map[types.EntityID]*component.TowerBrain

	Wave      *component.Wave
	GameState *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Healths:     make(map[types.EntityID]*component.Health),
		Renderables: make(map[types.EntityID]*component.Renderable),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Towers:      make(map[types.EntityID]*component.Tower),
		Cooldowns:   make(map[types.EntityID]*component.TowerCooldowns),
		Turrets:     make(map[types.EntityID]*component.Turret),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		EnemyBrains: make(map[types.EntityID]*component.EnemyBrain),
		TowerBrains: make(map[types.EntityID]*component.TowerBrain),
		Wave:        &component.Wave{},
		GameState:   &component.GameState{},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// Remove drops every component of id.
func (ecs *ECS) Remove(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Enemies, id)
	delete(ecs.Towers, id)
	delete(ecs.Cooldowns, id)
	delete(ecs.Turrets, id)
	delete(ecs.Projectiles, id)
	delete(ecs.EnemyBrains, id)
	delete(ecs.TowerBrains, id)
}

// SortedIDs returns the keys of m in ascending order. Every per-tick loop
// that affects the outcome goes through it so runs replay exactly.
func SortedIDs[V any](m map[types.EntityID]V) []types.EntityID {
	return slices.Sorted(maps.Keys(m))
}

// ThinkEnemy runs the tree of enemy id once on view. The intent is zeroed
// first. A view built for another agent or another tick is a programming
// error and panics.
func (ecs *ECS) ThinkEnemy(id types.EntityID, view *ai.EnemyView, audit *bt.Audit) (bt.State, ai.EnemyIntent) {
	brain, ok := ecs.EnemyBrains[id]
	if !ok {
		panic(fmt.Sprintf("entity: no enemy brain for %d", id))
	}
	checkView(id, view.Agent, ecs.Tick, view.Tick)
	brain.Intent = ai.EnemyIntent{}
	brain.State = brain.Tree.Tick(view, &brain.Intent, nil, audit)
	return brain.State, brain.Intent
}

// ThinkTower runs the tree of tower id once on view.
func (ecs *ECS) ThinkTower(id types.EntityID, view *ai.TowerView, audit *bt.Audit) (bt.State, ai.TowerIntent) {
	brain, ok := ecs.TowerBrains[id]
	if !ok {
		panic(fmt.Sprintf("entity: no tower brain for %d", id))
	}
	checkView(id, view.Agent, ecs.Tick, view.Tick)
	brain.Intent = ai.TowerIntent{}
	brain.State = brain.Tree.Tick(view, &brain.Intent, nil, audit)
	return brain.State, brain.Intent
}

func checkView(id, agent types.EntityID, tick, viewTick uint64) {
	if agent != id {
		panic(fmt.Sprintf("entity: view for agent %d given to %d", agent, id))
	}
	if viewTick != tick {
		panic(fmt.Sprintf("entity: stale view from tick %d at tick %d", viewTick, tick))
	}
}

// ReplaceTrees rebuilds every agent's tree from f. Either all trees are
// replaced or, on error, none. New trees start without progress.
func (ecs *ECS) ReplaceTrees(f *ai.Factory) error {
	enemies := make(map[types.EntityID]*ai.EnemyTree, len(ecs.EnemyBrains))
	for _, id := range SortedIDs(ecs.EnemyBrains) {
		tree, err := f.EnemyTree(ecs.Enemies[id].DefID)
		if err != nil {
			return fmt.Errorf("rebuild enemy %d: %w", id, err)
		}
		enemies[id] = tree
	}
	towers := make(map[types.EntityID]*ai.TowerTree, len(ecs.TowerBrains))
	for _, id := range SortedIDs(ecs.TowerBrains) {
		tree, err := f.TowerTree(ecs.Towers[id].DefID)
		if err != nil {
			return fmt.Errorf("rebuild tower %d: %w", id, err)
		}
		towers[id] = tree
	}
	for id, tree := range enemies {
		ecs.EnemyBrains[id].Tree = tree
	}
	for id, tree := range towers {
		ecs.TowerBrains[id].Tree = tree
	}
	return nil
}
