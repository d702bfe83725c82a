package component

import (
	"ten-second-towers/internal/ai"
	"ten-second-towers/pkg/bt"
)

// EnemyBrain owns the behavior tree of one enemy and the intent it
// produced on the latest tick.
type EnemyBrain struct {
	Tree   *ai.EnemyTree
	Intent ai.EnemyIntent
	State  bt.State
}

// TowerBrain owns the behavior tree of one tower.
type TowerBrain struct {
	Tree   *ai.TowerTree
	Intent ai.TowerIntent
	State  bt.State
}
