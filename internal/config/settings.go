// internal/config/settings.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ten-second-towers/pkg/tilemap"
)

// Settings are the runtime knobs of a simulation. Zero-valued sections in a
// YAML file keep their defaults.
type Settings struct {
	Field   FieldSettings   `yaml:"field"`
	Paths   PathSettings    `yaml:"paths"`
	Waves   WaveSettings    `yaml:"waves"`
	Economy EconomySettings `yaml:"economy"`
	Sim     SimSettings     `yaml:"sim"`
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type FieldSettings struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
	Offset   float64 `yaml:"offset"`
	Source   *Point  `yaml:"source,omitempty"` // default (0, height/2)
	Target   *Point  `yaml:"target,omitempty"` // default (width-1, height/2)
}

type PathSettings struct {
	StaleWindow       float64 `yaml:"stale_window"`
	CostDecayInterval float64 `yaml:"cost_decay_interval"`
}

type WaveSettings struct {
	Length      float64 `yaml:"length"`
	SpawnWindow float64 `yaml:"spawn_window"`
}

type EconomySettings struct {
	BaseHealth int `yaml:"base_health"`
	Minerals   int `yaml:"minerals"`
	Dust       int `yaml:"dust"`
	Tech       int `yaml:"tech"`
}

type SimSettings struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"`
}

// Default returns the settings of the stock game.
func Default() Settings {
	return Settings{
		Field: FieldSettings{
			Width:    FieldWidth,
			Height:   FieldHeight,
			TileSize: TileSize,
			Offset:   TileOffset,
		},
		Paths: PathSettings{
			StaleWindow:       StaleWindow,
			CostDecayInterval: CostDecayInterval,
		},
		Waves: WaveSettings{
			Length:      WaveLength,
			SpawnWindow: SpawnWindow,
		},
		Economy: EconomySettings{
			BaseHealth: BaseHealth,
			Minerals:   StartMinerals,
			Dust:       StartDust,
			Tech:       StartTech,
		},
		Sim: SimSettings{
			TickRate: TickRate,
		},
	}
}

// Load reads YAML settings from path on top of Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of Default and validates them.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// SourceLocation is the spawner tile.
func (f FieldSettings) SourceLocation() tilemap.Location {
	if f.Source != nil {
		return tilemap.Location{X: f.Source.X, Y: f.Source.Y}
	}
	return tilemap.Location{X: 0, Y: f.Height / 2}
}

// TargetLocation is the goal tile.
func (f FieldSettings) TargetLocation() tilemap.Location {
	if f.Target != nil {
		return tilemap.Location{X: f.Target.X, Y: f.Target.Y}
	}
	return tilemap.Location{X: f.Width - 1, Y: f.Height / 2}
}

func (f FieldSettings) Geometry() tilemap.Geometry {
	return tilemap.Geometry{TileSize: f.TileSize, OffsetX: f.Offset, OffsetY: f.Offset}
}

// NewField builds the tile grid described by f.
func (f FieldSettings) NewField() *tilemap.Field {
	return tilemap.NewField(f.Width, f.Height, f.SourceLocation(), f.TargetLocation(), f.Geometry())
}

// TickDelta is the fixed simulation step in seconds.
func (s SimSettings) TickDelta() float64 {
	return 1 / float64(s.TickRate)
}

func (s Settings) Validate() error {
	f := s.Field
	if f.Width < 2 || f.Height < 1 {
		return fmt.Errorf("field must be at least 2x1, got %dx%d", f.Width, f.Height)
	}
	if f.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", f.TileSize)
	}
	src, dst := f.SourceLocation(), f.TargetLocation()
	inField := func(l tilemap.Location) bool {
		return l.X >= 0 && l.Y >= 0 && l.X < f.Width && l.Y < f.Height
	}
	if !inField(src) {
		return fmt.Errorf("source %v outside field", src)
	}
	if !inField(dst) {
		return fmt.Errorf("target %v outside field", dst)
	}
	if src == dst {
		return fmt.Errorf("source and target must differ, both %v", src)
	}
	if s.Paths.StaleWindow <= 0 {
		return fmt.Errorf("stale_window must be positive, got %v", s.Paths.StaleWindow)
	}
	if s.Paths.CostDecayInterval < 0 {
		return fmt.Errorf("cost_decay_interval cannot be negative, got %v", s.Paths.CostDecayInterval)
	}
	if s.Waves.Length <= 0 {
		return fmt.Errorf("wave length must be positive, got %v", s.Waves.Length)
	}
	if s.Waves.SpawnWindow <= 0 || s.Waves.SpawnWindow > s.Waves.Length {
		return fmt.Errorf("spawn_window must be in (0, %v], got %v", s.Waves.Length, s.Waves.SpawnWindow)
	}
	if s.Economy.BaseHealth <= 0 {
		return fmt.Errorf("base_health must be positive, got %d", s.Economy.BaseHealth)
	}
	if s.Sim.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", s.Sim.TickRate)
	}
	return nil
}
