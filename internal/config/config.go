// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1024
	ScreenHeight = 768
	HUDHeight    = 48

	FieldWidth  = 29
	FieldHeight = 20
	TileSize    = 32.0
	TileOffset  = 16.0 // pixel center of tile (0,0)

	StaleWindow       = 1.0 // seconds a cached path bag is trusted
	CostDecayInterval = 2.0 // seconds between one-step cost decays; 0 disables

	WaveLength  = 10.0
	SpawnWindow = 3.0 // spawns of a wave are spread over its first seconds
	BaseHealth  = 20

	StartMinerals = 6
	StartDust     = 2
	StartTech     = 0

	TickRate     = 60
	MaxDeltaTime = 0.06

	EnemyRadius  = 10.0
	TowerRadius  = 12.0
	BulletRadius = 3.0

	AttackInterval  = 1.0  // seconds between melee hits and thefts of one enemy
	TurretTurnSpeed = 10.0 // radians per second
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	TileColor       = color.RGBA{70, 100, 120, 220}
	BlockedColor    = color.RGBA{150, 70, 70, 220}
	SpawnerColor    = color.RGBA{0, 255, 0, 255}
	GoalColor       = color.RGBA{255, 0, 0, 255}
	CostColor       = color.RGBA{220, 160, 40, 255}
	PathColor       = color.RGBA{255, 255, 0, 128}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	TextDarkColor   = color.RGBA{20, 20, 30, 255}
	HUDColor        = color.RGBA{30, 30, 45, 230}
	StrokeWidth     = 2.0
)
