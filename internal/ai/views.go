// internal/ai/views.go
package ai

import (
	"ten-second-towers/internal/types"
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
	"ten-second-towers/pkg/tilemap"
)

// TowerRef is a tower as seen by another agent.
type TowerRef struct {
	ID       types.EntityID
	Type     string
	Tile     tilemap.Location
	Position utils.Vec2
}

// EnemyRef is an enemy as seen by a tower. Velocity is the movement the
// enemy committed to on the previous tick.
type EnemyRef struct {
	ID       types.EntityID
	Type     string
	Position utils.Vec2
	Velocity utils.Vec2
}

// EnemyView is the read-only snapshot an enemy's tree decides on. It is
// rebuilt every tick and must not be kept.
type EnemyView struct {
	Agent types.EntityID
	Tick  uint64
	Now   float64

	Geometry         tilemap.Geometry
	Position         utils.Vec2
	Tile             tilemap.Location
	Type             string
	Health           int
	MaxHealth        int
	DistanceFromGoal int
	// ShortestPaths is nil when the goal is unreachable from Tile.
	ShortestPaths  *tilemap.PathBag
	NeighborTowers []TowerRef
}

// HasPath reports whether the goal is reachable.
func (v EnemyView) HasPath() bool {
	return v.ShortestPaths != nil && !v.ShortestPaths.Empty()
}

// EnemyIntent is what an enemy wants to do this tick. The zero value does
// nothing.
type EnemyIntent struct {
	MoveTowards utils.Vec2 // unit direction, zero to stand still
	AttackTower types.EntityID
	ExplodeNow  bool
}

// TowerView is the read-only snapshot a tower's tree decides on.
type TowerView struct {
	Agent types.EntityID
	Tick  uint64
	Now   float64

	DeltaSeconds   float64
	Position       utils.Vec2
	Tile           tilemap.Location
	Type           string
	Health         int
	MaxHealth      int
	TimeSinceShot  float64
	Ammo           int
	HasAmmo        bool
	ShotsFired     uint64 // shots actually applied over the tower's life
	Enemies        []EnemyRef
	NeighborTowers []TowerRef
}

// Shot is a fire command.
type Shot struct {
	Bullet   string
	Velocity utils.Vec2
	Lifetime float64
}

// TowerIntent is what a tower wants to do this tick.
type TowerIntent struct {
	FaceTowards utils.Vec2 // zero keeps the current facing
	AttackEnemy types.EntityID
	FireNow     bool
	Fire        Shot
	Assist      types.EntityID
}

type (
	EnemyNode = bt.Node[EnemyView, EnemyIntent]
	EnemyTree = bt.Tree[EnemyView, EnemyIntent]
	TowerNode = bt.Node[TowerView, TowerIntent]
	TowerTree = bt.Tree[TowerView, TowerIntent]
)

// Idle succeeds without acting. It is the usual last resort of a selector.
type Idle[M, C any] struct{}

func (Idle[M, C]) Resume(*M, *C, *int, bt.Marker) bt.State { return bt.Complete }
func (Idle[M, C]) Reset(*M)                                 {}

func nearestTower(from utils.Vec2, towers []TowerRef) (TowerRef, bool) {
	best, bestDist, found := TowerRef{}, 0.0, false
	for _, t := range towers {
		d := from.DistanceSquared(t.Position)
		if !found || d < bestDist {
			best, bestDist, found = t, d, true
		}
	}
	return best, found
}
