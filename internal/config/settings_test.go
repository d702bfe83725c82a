package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/pkg/tilemap"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, tilemap.Location{X: 0, Y: 10}, s.Field.SourceLocation())
	assert.Equal(t, tilemap.Location{X: 28, Y: 10}, s.Field.TargetLocation())
	assert.InDelta(t, 1.0/60, s.Sim.TickDelta(), 1e-12)

	f := s.Field.NewField()
	assert.Equal(t, 29, f.Width())
	assert.True(t, f.IsGoal(tilemap.Location{X: 28, Y: 10}))
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
field:
  width: 10
  height: 6
  target: {x: 9, y: 0}
paths:
  stale_window: 0.5
sim:
  seed: 99
`))
	require.NoError(t, err)
	assert.Equal(t, 10, s.Field.Width)
	assert.Equal(t, TileSize, s.Field.TileSize, "unset keys keep defaults")
	assert.Equal(t, tilemap.Location{X: 0, Y: 3}, s.Field.SourceLocation())
	assert.Equal(t, tilemap.Location{X: 9, Y: 0}, s.Field.TargetLocation())
	assert.Equal(t, 0.5, s.Paths.StaleWindow)
	assert.Equal(t, int64(99), s.Sim.Seed)
	assert.Equal(t, BaseHealth, s.Economy.BaseHealth)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"tiny field", "field: {width: 1, height: 1}", "at least 2x1"},
		{"source outside", "field: {source: {x: -1, y: 0}}", "source"},
		{"same ends", "field: {width: 4, height: 1, source: {x: 1, y: 0}, target: {x: 1, y: 0}}", "must differ"},
		{"stale window", "paths: {stale_window: 0}", "stale_window"},
		{"decay", "paths: {cost_decay_interval: -1}", "cost_decay_interval"},
		{"spawn window", "waves: {length: 2, spawn_window: 3}", "spawn_window"},
		{"health", "economy: {base_health: -3}", "base_health"},
		{"tick rate", "sim: {tick_rate: -1}", "tick_rate"},
		{"bad yaml", "field: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("economy:\n  minerals: 50\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, s.Economy.Minerals)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
