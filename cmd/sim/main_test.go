package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/internal/app"
	"ten-second-towers/internal/config"
	"ten-second-towers/pkg/tilemap"
)

func TestParseTower(t *testing.T) {
	kind, loc, err := parseTower("attack@5, 9")
	require.NoError(t, err)
	assert.Equal(t, "attack", kind)
	assert.Equal(t, tilemap.Location{X: 5, Y: 9}, loc)

	for _, bad := range []string{"attack", "attack@5", "attack@x,1", "attack@1,y"} {
		_, _, err := parseTower(bad)
		assert.Error(t, err, bad)
	}
}

func TestSimulateStopsAtDuration(t *testing.T) {
	g, err := app.NewGame(app.Options{
		Settings: config.Default(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	require.NoError(t, simulate(context.Background(), g, 2, false))
	assert.InDelta(t, 2.0, g.GameTime(), g.Settings().Sim.TickDelta()+1e-9)
}

func TestSimulateStopsWhenCancelled(t *testing.T) {
	g, err := app.NewGame(app.Options{
		Settings: config.Default(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, simulate(ctx, g, 0, false))
	assert.Zero(t, g.ECS.Tick)
}
