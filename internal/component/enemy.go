package component

import "ten-second-towers/pkg/tilemap"

// Enemy is an attacker walking toward the goal.
type Enemy struct {
	DefID       string
	Boosts      int
	Tile        tilemap.Location
	FlatPaths   bool // paths ignore tile costs
	ReachedGoal bool
}
