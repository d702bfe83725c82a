// internal/ai/enemy_nodes.go
package ai

import (
	"ten-second-towers/internal/utils"
	"ten-second-towers/pkg/bt"
)

// PathfindNode steps toward the next tile of the preferred shortest path.
type PathfindNode struct{}

func (PathfindNode) Resume(v *EnemyView, intent *EnemyIntent, _ *int, mark bt.Marker) bt.State {
	if v.ShortestPaths == nil {
		mark.Mark("no-path")
		return bt.Failed
	}
	next, ok := v.ShortestPaths.NextStep()
	if !ok {
		mark.Mark("at-goal")
		return bt.Failed
	}
	cx, cy := v.Geometry.Center(next)
	dir := utils.Vec2{X: cx, Y: cy}.Sub(v.Position).Normalize()
	if dir.IsZero() {
		d := next.Sub(v.Tile)
		dir = utils.Vec2{X: float64(d.X), Y: float64(d.Y)}.Normalize()
	}
	intent.MoveTowards = dir
	return bt.Complete
}

func (PathfindNode) Reset(*EnemyView) {}

// AttackTowerNode targets the nearest neighboring tower.
type AttackTowerNode struct{}

func (AttackTowerNode) Resume(v *EnemyView, intent *EnemyIntent, _ *int, _ bt.Marker) bt.State {
	t, ok := nearestTower(v.Position, v.NeighborTowers)
	if !ok {
		return bt.Failed
	}
	intent.AttackTower = t.ID
	return bt.Complete
}

func (AttackTowerNode) Reset(*EnemyView) {}

// ExplodeNode blows up next to a tower.
type ExplodeNode struct{}

func (ExplodeNode) Resume(v *EnemyView, intent *EnemyIntent, _ *int, _ bt.Marker) bt.State {
	if len(v.NeighborTowers) == 0 {
		return bt.Failed
	}
	intent.ExplodeNow = true
	return bt.Complete
}

func (ExplodeNode) Reset(*EnemyView) {}
