package event

import (
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/types"
	"ten-second-towers/pkg/tilemap"
)

const (
	EnemySpawned        EventType = "EnemySpawned"
	EnemyKilled         EventType = "EnemyKilled"
	GoalReached         EventType = "GoalReached"
	TowerPlaced         EventType = "TowerPlaced"
	TowerRemoved        EventType = "TowerRemoved"
	TowerDestroyed      EventType = "TowerDestroyed"
	BulletHit           EventType = "BulletHit"
	WaveEnded           EventType = "WaveEnded"
	GameOver            EventType = "GameOver"
	DefinitionsReloaded EventType = "DefinitionsReloaded"
)

// EnemyData is the payload of EnemySpawned, EnemyKilled and GoalReached.
type EnemyData struct {
	ID    types.EntityID
	DefID string
	Tile  tilemap.Location
	Loot  defs.Resources
}

// TowerData is the payload of the tower events.
type TowerData struct {
	ID    types.EntityID
	DefID string
	Tile  tilemap.Location
}

// HitData is the payload of BulletHit.
type HitData struct {
	Bullet types.EntityID
	Target types.EntityID
	Damage int
}

// WaveData is the payload of WaveEnded. Number is the wave that starts.
type WaveData struct {
	Number int
}
