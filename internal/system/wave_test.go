package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ten-second-towers/internal/component"
	"ten-second-towers/internal/defs"
	"ten-second-towers/internal/event"
	"ten-second-towers/internal/utils"
)

func TestComposeScriptedWave(t *testing.T) {
	table := defs.WaveTable{Scripted: []defs.WaveDefinition{
		{Spawns: []defs.Spawn{{Enemy: "basic", Count: 2}, {Enemy: "fast", Count: 1, Boosts: 1}}},
	}}
	got := ComposeWave(table, 1, utils.NewPRNGService(1))
	assert.Equal(t, []component.PendingSpawn{
		{Enemy: "basic"}, {Enemy: "basic"}, {Enemy: "fast", Boosts: 1},
	}, got)
	assert.Empty(t, ComposeWave(table, 0, utils.NewPRNGService(1)))
}

func TestComposeRandomWave(t *testing.T) {
	table := defs.WaveTable{Random: defs.RandomWaves{
		BudgetPerWave: 2,
		BoostAbove:    100,
		Fallback:      "basic",
		Entries:       []defs.RandomEntry{{Enemy: "gnat", Weight: 1, Cost: 1, Count: 3}},
	}}
	got := ComposeWave(table, 2, utils.NewPRNGService(7))
	require.Len(t, got, 12, "budget 4 buys four packs of three")
	for _, sp := range got {
		assert.Equal(t, "gnat", sp.Enemy)
		assert.Zero(t, sp.Boosts)
	}
}

func TestComposeRandomWaveFallsBackWhenUnaffordable(t *testing.T) {
	table := defs.WaveTable{Random: defs.RandomWaves{
		BudgetPerWave: 1,
		BoostAbove:    100,
		Fallback:      "basic",
		Entries:       []defs.RandomEntry{{Enemy: "buster", Weight: 1, Cost: 3, Count: 1}},
	}}
	got := ComposeWave(table, 3, utils.NewPRNGService(7))
	assert.Equal(t, []component.PendingSpawn{{Enemy: "basic"}, {Enemy: "basic"}, {Enemy: "basic"}}, got)

	got = ComposeWave(table, 4, utils.NewPRNGService(7))
	assert.Equal(t, []component.PendingSpawn{{Enemy: "buster"}, {Enemy: "basic"}}, got)
}

func TestComposeRandomWaveBoosts(t *testing.T) {
	table := defs.WaveTable{Random: defs.RandomWaves{
		BudgetPerWave: 10,
		BoostAbove:    2,
		BoostCost:     1,
		Fallback:      "basic",
		Entries:       []defs.RandomEntry{{Enemy: "basic", Weight: 1, Cost: 1, Count: 1}},
	}}
	got := ComposeWave(table, 1, utils.NewPRNGService(3))
	boosts := 0
	for _, sp := range got {
		boosts += sp.Boosts
	}
	// each roll spends 1, then 1 more on a boost while above 2
	assert.Equal(t, 10, len(got)+boosts)
	assert.Equal(t, 4, boosts)
}

func TestComposeRandomWaveIsReproducible(t *testing.T) {
	lib, err := defs.LoadEmbedded()
	require.NoError(t, err)
	n := len(lib.Waves.Scripted) + 3
	a := ComposeWave(lib.Waves, n, utils.NewPRNGService(42))
	b := ComposeWave(lib.Waves, n, utils.NewPRNGService(42))
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
	for _, sp := range a {
		assert.Contains(t, lib.Enemies, sp.Enemy)
	}
}

func TestWaveClock(t *testing.T) {
	fx := newFixture(t)
	ws := NewWaveSystem(fx.ecs, fx.field, fx.dispatcher, utils.NewPRNGService(1), fx.getFactory, 10, 3, nil)
	require.Equal(t, 0, fx.ecs.Wave.Number)

	for range 99 {
		ws.Update(0.1)
	}
	assert.Equal(t, 0, fx.ecs.Wave.Number, "wave 0 is quiet")
	assert.Empty(t, fx.ecs.Enemies)

	ws.Update(0.2)
	require.Equal(t, 1, fx.ecs.Wave.Number)
	require.Len(t, fx.eventsOf(event.WaveEnded), 1)
	assert.Equal(t, event.WaveData{Number: 1}, fx.eventsOf(event.WaveEnded)[0].Data)
	assert.InDelta(t, 9.9, fx.ecs.Wave.TimeLeft, 1e-6)

	queued := len(fx.ecs.Wave.Queue)
	scripted, _ := fx.lib().Waves.ScriptedWave(1)
	total := 0
	for _, sp := range scripted.Spawns {
		total += sp.Count
	}
	require.Equal(t, total, queued)

	// all spawns land inside the spawn window, one per tick at most
	for range 30 {
		before := len(fx.ecs.Enemies)
		ws.Update(0.1)
		assert.LessOrEqual(t, len(fx.ecs.Enemies)-before, 1)
	}
	assert.Empty(t, fx.ecs.Wave.Queue)
	assert.Len(t, fx.ecs.Enemies, total)
	assert.Len(t, fx.eventsOf(event.EnemySpawned), total)

	for id, e := range fx.ecs.Enemies {
		assert.Equal(t, fx.field.Source(), e.Tile)
		assert.Contains(t, fx.ecs.EnemyBrains, id)
	}
}

func TestSpawnAppliesBoosts(t *testing.T) {
	fx := newFixture(t)
	ws := NewWaveSystem(fx.ecs, fx.field, fx.dispatcher, utils.NewPRNGService(1), fx.getFactory, 10, 3, nil)

	id, err := ws.Spawn("basic", 2)
	require.NoError(t, err)
	def := fx.lib().Enemies["basic"]
	assert.Equal(t, def.Health+2*def.BoostHealth, fx.ecs.Healths[id].Max)
	assert.True(t, fx.ecs.Renderables[id].HasStroke)

	_, err = ws.Spawn("nobody", 0)
	assert.Error(t, err)
}
