package component

import "ten-second-towers/internal/defs"

// GameState is the player's side of the simulation.
type GameState struct {
	BaseHealth int
	Resources  defs.Resources
	Kills      int
	Leaks      int
}

func (s *GameState) Over() bool { return s.BaseHealth <= 0 }

// PendingSpawn is one enemy still to enter the field this wave.
type PendingSpawn struct {
	Enemy  string
	Boosts int
}

// Wave is the ten second wave clock.
type Wave struct {
	Number     int
	TimeLeft   float64
	SpawnTimer float64 // seconds until the next spawn
	SpawnDelay float64
	Queue      []PendingSpawn
}
